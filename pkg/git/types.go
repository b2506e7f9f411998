package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
}

// Commit is the normalized view of a git commit used throughout the
// workflow. Produced only by BranchCommits from go-git commit objects.
type Commit struct {
	Hash          string
	ShortHash     string
	Author        Signature
	Committer     Signature
	Message       string
	CommittedDate int64
	AuthoredDate  int64
}

const shortHashLen = 7

func convertCommit(c *object.Commit) Commit {
	hash := c.Hash.String()
	return Commit{
		Hash:      hash,
		ShortHash: hash[:shortHashLen],
		Author: Signature{
			Name:  c.Author.Name,
			Email: c.Author.Email,
		},
		Committer: Signature{
			Name:  c.Committer.Name,
			Email: c.Committer.Email,
		},
		Message:       strings.TrimSpace(c.Message),
		CommittedDate: c.Committer.When.Unix(),
		AuthoredDate:  c.Author.When.Unix(),
	}
}
