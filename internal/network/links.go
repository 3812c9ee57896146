// Package network turns appearance rows into the co-appearance graph and
// answers the costar and link queries a detail view needs.
package network

import "github.com/costarnet/core/internal/models"

// ResolveLink returns the link of the issue whose id equals id exactly.
func ResolveLink(issues []models.IssueRecord, id models.IssueID) (string, error) {
	for _, issue := range issues {
		if issue.Comic == id {
			return issue.Link, nil
		}
	}
	return "", &models.LookupError{Kind: "issue", Key: id}
}

// IssueIndex is ResolveLink over a precomputed map.
type IssueIndex map[models.IssueID]string

// NewIssueIndex indexes issues by comic. The first record wins when the
// table lists a comic twice, matching ResolveLink.
func NewIssueIndex(issues []models.IssueRecord) IssueIndex {
	index := make(IssueIndex, len(issues))
	for _, issue := range issues {
		if _, exists := index[issue.Comic]; !exists {
			index[issue.Comic] = issue.Link
		}
	}
	return index
}

// Resolve returns the link of id or a LookupError of kind "issue".
func (ix IssueIndex) Resolve(id models.IssueID) (string, error) {
	link, ok := ix[id]
	if !ok {
		return "", &models.LookupError{Kind: "issue", Key: id}
	}
	return link, nil
}
