package demo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/models"
)

// ErrIssueNotFound is returned for an unknown sample issue id
var ErrIssueNotFound = errors.New("issue not found")

// VoteType is a community validation action on an issue
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

var sampleIssues = []models.Issue{
	{
		ID:                  "ISS-001",
		Title:               "Pothole on Main Street",
		Category:            "Roads",
		Status:              "In Progress",
		Priority:            "High",
		Upvotes:             23,
		Location:            "123 Main St, Ranchi, Jharkhand",
		ReportedDate:        "2025-09-15",
		EstimatedResolution: "2025-09-20",
		Description:         "Large pothole causing traffic issues and potential vehicle damage.",
	},
	{
		ID:                  "ISS-002",
		Title:               "Broken Street Light",
		Category:            "Utilities",
		Status:              "Open",
		Priority:            "Medium",
		Upvotes:             15,
		Location:            "456 Oak Ave, Dhanbad, Jharkhand",
		ReportedDate:        "2025-09-16",
		EstimatedResolution: "2025-09-22",
		Description:         "Street light pole damaged, affecting nighttime visibility and safety.",
	},
	{
		ID:           "ISS-003",
		Title:        "Garbage Overflow",
		Category:     "Sanitation",
		Status:       "Resolved",
		Priority:     "High",
		Upvotes:      31,
		Location:     "789 Park Road, Jamshedpur, Jharkhand",
		ReportedDate: "2025-09-10",
		ResolvedDate: "2025-09-14",
		Description:  "Waste bins overflowing, creating hygiene concerns and attracting pests.",
	},
}

// Issues returns the sample issues shown in the demo panels
func Issues() []models.Issue {
	return append([]models.Issue(nil), sampleIssues...)
}

// Issue returns one sample issue by id
func Issue(id string) (models.Issue, error) {
	for _, is := range sampleIssues {
		if is.ID == id {
			return is, nil
		}
	}
	return models.Issue{}, fmt.Errorf("%w: %s", ErrIssueNotFound, id)
}

// Votes keeps simulated community validation counts. Counts live only in
// memory and start from each issue's upvotes on every restart.
type Votes struct {
	mu    sync.Mutex
	tally map[string]*models.VoteTally
}

// NewVotes seeds tallies from the sample issues
func NewVotes() *Votes {
	v := &Votes{tally: make(map[string]*models.VoteTally)}
	for _, is := range sampleIssues {
		v.tally[is.ID] = &models.VoteTally{IssueID: is.ID, Confirmations: is.Upvotes}
	}
	return v
}

// Vote records a confirmation (up) or dispute (down) and returns the new tally
// together with the message to show the voter.
func (v *Votes) Vote(issueID string, kind VoteType) (models.VoteTally, models.Notification, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	t, ok := v.tally[issueID]
	if !ok {
		return models.VoteTally{}, models.Notification{}, fmt.Errorf("%w: %s", ErrIssueNotFound, issueID)
	}

	var n models.Notification
	switch kind {
	case VoteUp:
		t.Confirmations++
		n = models.Notification{Message: "✅ Thank you for validating this issue!", Type: models.NotifySuccess}
	case VoteDown:
		t.Disputes++
		n = models.Notification{Message: "⚠️ Issue marked as disputed. Requires review.", Type: models.NotifyWarning}
	default:
		return models.VoteTally{}, models.Notification{}, fmt.Errorf("unknown vote type %q", kind)
	}
	n.CreatedAt = time.Now()
	return *t, n, nil
}

// Tally returns the current counts for an issue
func (v *Votes) Tally(issueID string) (models.VoteTally, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	t, ok := v.tally[issueID]
	if !ok {
		return models.VoteTally{}, fmt.Errorf("%w: %s", ErrIssueNotFound, issueID)
	}
	return *t, nil
}

// Analytics is the landing page dashboard whose total issue count creeps
// upward on a timer to look live.
type Analytics struct {
	mu   sync.Mutex
	snap models.Analytics
	rnd  *rand.Rand
}

// NewAnalytics returns the seeded dashboard figures
func NewAnalytics(seed int64) *Analytics {
	return &Analytics{
		snap: models.Analytics{
			TotalIssues:             1247,
			ResolvedIssues:          892,
			InProgressIssues:        234,
			OpenIssues:              121,
			AverageResolutionTime:   "4.2 days",
			CitizenSatisfactionRate: "87%",
		},
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Snapshot returns the current figures
func (a *Analytics) Snapshot() models.Analytics {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snap
}

// Bump adds 0, 1 or 2 to the total issue count and returns the new total
func (a *Analytics) Bump() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.snap.TotalIssues += a.rnd.Intn(3)
	return a.snap.TotalIssues
}

// Run bumps the total every interval until ctx is done
func (a *Analytics) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Bump()
		}
	}
}
