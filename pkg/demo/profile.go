package demo

import "github.com/esamadhan/volunteer-api/pkg/models"

var sampleTimelines = map[string]models.IssueTimeline{
	"ISS-001": {
		IssueID: "ISS-001",
		Title:   "Pothole Repair",
		Steps: []models.TimelineStep{
			{Marker: "✅", Title: "Issue Reported", When: "2025-09-15 14:30", Status: models.TrackCompleted},
			{Marker: "🤖", Title: "AI Classification", When: "2025-09-15 14:35", Status: models.TrackCompleted},
			{Marker: "👥", Title: "Community Validation", When: "2025-09-15 18:45", Status: models.TrackCompleted},
			{Marker: "🔄", Title: "Department Assignment", When: "2025-09-16 09:15", Status: models.TrackInProgress},
			{Marker: "👷", Title: "Inspection", When: "Expected 2025-09-17", Status: models.TrackPending},
			{Marker: "🚧", Title: "Repair Work", When: "Expected 2025-09-18 to 2025-09-20", Status: models.TrackPending},
		},
		Updates: []models.TrackingUpdate{
			{Age: "Just now", Message: "🔔 Your issue has been assigned to PWD Team Alpha"},
			{Age: "2 hours ago", Message: "📊 Issue validation completed - 95% community confidence"},
			{Age: "Yesterday", Message: "🤖 AI analysis complete - High priority classification"},
		},
	},
}

var sampleProfile = models.CitizenProfile{
	Username:       "CivicChampion2025",
	Level:          7,
	IssuesReported: 23,
	IssuesVerified: 67,
	AccuracyPct:    94,
	Points:         2450,
	LevelXP:        650,
	NextLevelXP:    1000,
	Badges: []models.Badge{
		{Icon: "🔍", Name: "Eagle Eye", Description: "Reported 10+ accurate issues", Earned: true},
		{Icon: "👥", Name: "Community Helper", Description: "Validated 50+ issues", Earned: true},
		{Icon: "⚡", Name: "Quick Reporter", Description: "First to report trending issues", Earned: true},
		{Icon: "🌟", Name: "Civic Legend", Description: "Reach Level 10"},
	},
	Leaderboard: []models.LeaderboardEntry{
		{Rank: 1, Username: "CivicHero2025", Points: 3247},
		{Rank: 2, Username: "CommunityGuardian", Points: 2891},
		{Rank: 3, Username: "CivicChampion2025", Points: 2450, CurrentUser: true},
	},
	Rewards: []models.Reward{
		{Icon: "🎟️", Name: "Bus Pass Discount", Description: "10% off monthly bus pass", Cost: 500},
		{Icon: "🌳", Name: "Tree Planting Certificate", Description: "Sponsor a tree in your name", Cost: 1000},
	},
}

// Timeline returns the tracking view of a sample issue. Issues without
// tracking data get an empty timeline.
func Timeline(issueID string) (models.IssueTimeline, error) {
	is, err := Issue(issueID)
	if err != nil {
		return models.IssueTimeline{}, err
	}
	tl, ok := sampleTimelines[issueID]
	if !ok {
		return models.IssueTimeline{
			IssueID: is.ID,
			Title:   is.Title,
			Steps:   []models.TimelineStep{},
			Updates: []models.TrackingUpdate{},
		}, nil
	}
	tl.Steps = append([]models.TimelineStep(nil), tl.Steps...)
	tl.Updates = append([]models.TrackingUpdate(nil), tl.Updates...)
	return tl, nil
}

// Profile returns the sample gamification profile
func Profile() models.CitizenProfile {
	p := sampleProfile
	p.Badges = append([]models.Badge(nil), p.Badges...)
	p.Leaderboard = append([]models.LeaderboardEntry(nil), p.Leaderboard...)
	p.Rewards = append([]models.Reward(nil), p.Rewards...)
	return p
}
