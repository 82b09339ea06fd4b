package models

import "time"

// Difficulty is the effort level of a volunteer task
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHigh:
		return true
	}
	return false
}

// AvailabilitySlot is a coarse time window a volunteer can offer
type AvailabilitySlot string

const (
	SlotMorning   AvailabilitySlot = "morning"
	SlotAfternoon AvailabilitySlot = "afternoon"
	SlotEvening   AvailabilitySlot = "evening"
	SlotWeekend   AvailabilitySlot = "weekend"
)

// AvailabilitySlots lists every slot in display order
var AvailabilitySlots = []AvailabilitySlot{SlotMorning, SlotAfternoon, SlotEvening, SlotWeekend}

// Valid reports whether s is one of the known availability slots
func (s AvailabilitySlot) Valid() bool {
	for _, known := range AvailabilitySlots {
		if s == known {
			return true
		}
	}
	return false
}

// Task is a single volunteer work item
type Task struct {
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description" yaml:"description"`
	Location       string     `json:"location" yaml:"location"`
	Duration       string     `json:"duration" yaml:"duration"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	RequiredSkills []string   `json:"required_skills" yaml:"required_skills"`
	ToolsProvided  bool       `json:"tools_provided" yaml:"tools_provided"`
	Compensation   string     `json:"compensation" yaml:"compensation"`
}

// TaskCategory groups related volunteer tasks
type TaskCategory struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
	Tasks       []Task `json:"tasks" yaml:"tasks"`
}

// PersonalInfo holds the contact fields of a registration
type PersonalInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
	Address string `json:"address"`
}

// RegistrationDraft is the uncommitted form state of one open session.
// Set-valued fields are keyed by label and never hold false entries.
type RegistrationDraft struct {
	CategoryID        string                    `json:"category_id"`
	Personal          PersonalInfo              `json:"personal"`
	Skills            map[string]bool           `json:"skills"`
	Experience        string                    `json:"experience"`
	Motivation        string                    `json:"motivation"`
	Slots             map[AvailabilitySlot]bool `json:"slots"`
	AvailabilityNotes string                    `json:"availability_notes"`
	TaskIDs           map[string]bool           `json:"task_ids"`
	TermsAccepted     bool                      `json:"terms_accepted"`
	UpdatesOptIn      bool                      `json:"updates_opt_in"`
	OpenedAt          time.Time                 `json:"opened_at"`
}

// NewRegistrationDraft returns an empty draft scoped to categoryID
func NewRegistrationDraft(categoryID string, openedAt time.Time) *RegistrationDraft {
	return &RegistrationDraft{
		CategoryID: categoryID,
		Skills:     make(map[string]bool),
		Slots:      make(map[AvailabilitySlot]bool),
		TaskIDs:    make(map[string]bool),
		OpenedAt:   openedAt,
	}
}

// Clone returns a deep copy of the draft
func (d *RegistrationDraft) Clone() *RegistrationDraft {
	if d == nil {
		return nil
	}
	out := *d
	out.Skills = make(map[string]bool, len(d.Skills))
	for k := range d.Skills {
		out.Skills[k] = true
	}
	out.Slots = make(map[AvailabilitySlot]bool, len(d.Slots))
	for k := range d.Slots {
		out.Slots[k] = true
	}
	out.TaskIDs = make(map[string]bool, len(d.TaskIDs))
	for k := range d.TaskIDs {
		out.TaskIDs[k] = true
	}
	return &out
}

// DraftFields is a partial update of the draft's free-text and checkbox fields.
// Nil pointers leave the corresponding field untouched.
type DraftFields struct {
	Name              *string `json:"name" binding:"omitempty,max=100"`
	Email             *string `json:"email" binding:"omitempty,max=255"`
	Phone             *string `json:"phone" binding:"omitempty,max=30"`
	Age               *int    `json:"age" binding:"omitempty,min=0,max=130"`
	Address           *string `json:"address" binding:"omitempty,max=500"`
	Experience        *string `json:"experience" binding:"omitempty,max=5000"`
	Motivation        *string `json:"motivation" binding:"omitempty,max=5000"`
	AvailabilityNotes *string `json:"availability_notes" binding:"omitempty,max=2000"`
	TermsAccepted     *bool   `json:"terms_accepted"`
	UpdatesOptIn      *bool   `json:"updates_opt_in"`
}

// RegistrationResult is the display-only confirmation of a successful submission
type RegistrationResult struct {
	Reference     string    `json:"reference"`
	CategoryID    string    `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	VolunteerName string    `json:"volunteer_name"`
	TaskTitles    []string  `json:"task_titles"`
	Slots         []string  `json:"slots"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// NotificationType is the visual style of a transient notification
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a non-blocking message shown to the user for a short time
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}

// Issue is a sample civic issue rendered by the demo panels
type Issue struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Category            string `json:"category"`
	Status              string `json:"status"`
	Priority            string `json:"priority"`
	Upvotes             int    `json:"upvotes"`
	Location            string `json:"location"`
	ReportedDate        string `json:"reported_date"`
	EstimatedResolution string `json:"estimated_resolution,omitempty"`
	ResolvedDate        string `json:"resolved_date,omitempty"`
	Description         string `json:"description"`
}

// Analytics is the dashboard snapshot shown on the landing page
type Analytics struct {
	TotalIssues             int    `json:"total_issues"`
	ResolvedIssues          int    `json:"resolved_issues"`
	InProgressIssues        int    `json:"in_progress_issues"`
	OpenIssues              int    `json:"open_issues"`
	AverageResolutionTime   string `json:"average_resolution_time"`
	CitizenSatisfactionRate string `json:"citizen_satisfaction_rate"`
}

// VoteTally holds the simulated community validation counts for an issue
type VoteTally struct {
	IssueID       string `json:"issue_id"`
	Confirmations int    `json:"confirmations"`
	Disputes      int    `json:"disputes"`
}

// TrackStatus is the progress of one step on an issue timeline
type TrackStatus string

const (
	TrackCompleted  TrackStatus = "completed"
	TrackInProgress TrackStatus = "in_progress"
	TrackPending    TrackStatus = "pending"
)

// TimelineStep is one stage of an issue's resolution
type TimelineStep struct {
	Marker string      `json:"marker"`
	Title  string      `json:"title"`
	When   string      `json:"when"`
	Status TrackStatus `json:"status"`
}

// TrackingUpdate is a past notification about an issue
type TrackingUpdate struct {
	Age     string `json:"age"`
	Message string `json:"message"`
}

// IssueTimeline is the tracking view of a single issue
type IssueTimeline struct {
	IssueID string           `json:"issue_id"`
	Title   string           `json:"title"`
	Steps   []TimelineStep   `json:"steps"`
	Updates []TrackingUpdate `json:"updates"`
}

// Badge is a gamification achievement
type Badge struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// LeaderboardEntry is one row of the monthly leaderboard
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	Points      int    `json:"points"`
	CurrentUser bool   `json:"current_user,omitempty"`
}

// Reward can be redeemed with civic points
type Reward struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
}

// CitizenProfile is the sample gamification profile
type CitizenProfile struct {
	Username       string             `json:"username"`
	Level          int                `json:"level"`
	IssuesReported int                `json:"issues_reported"`
	IssuesVerified int                `json:"issues_validated"`
	AccuracyPct    int                `json:"accuracy_pct"`
	Points         int                `json:"points"`
	LevelXP        int                `json:"level_xp"`
	NextLevelXP    int                `json:"next_level_xp"`
	Badges         []Badge            `json:"badges"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
	Rewards        []Reward           `json:"rewards"`
}
