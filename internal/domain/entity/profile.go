package entity

// UserProfile is the record the onboarding page writes to browser storage under
// ProfileStorageKey. The dashboard reads it once on load. The server never persists it.
type UserProfile struct {
	Name             string   `json:"name"`
	Topic            string   `json:"topic"`
	Goal             string   `json:"goal"`
	Age              string   `json:"age,omitempty"`
	CurrentLevel     string   `json:"currentLevel"`
	LearningStyles   []string `json:"learningStyles,omitempty"`
	TimeCommitment   string   `json:"timeCommitment"`
	Deadline         string   `json:"deadline"`
	SpecificAreas    string   `json:"specificAreas,omitempty"`
	CareerGoals      string   `json:"careerGoals,omitempty"`
	PreferredFormats []string `json:"preferredFormats,omitempty"`
}

const ProfileStorageKey = "userProfile"

type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// OnboardingOptions is the catalog behind the landing and onboarding forms.
type OnboardingOptions struct {
	PopularTopics    []string `json:"popularTopics"`
	LearningStyles   []Option `json:"learningStyles"`
	DifficultyLevels []Option `json:"difficultyLevels"`
	TimeCommitments  []Option `json:"timeCommitments"`
	ContentFormats   []string `json:"contentFormats"`
	TotalSteps       int      `json:"totalSteps"`
	StorageKey       string   `json:"storageKey"`
}

func DefaultOnboardingOptions() OnboardingOptions {
	return OnboardingOptions{
		PopularTopics: []string{
			"Machine Learning", "Web Development", "Data Science", "Digital Marketing",
			"Photography", "Python Programming", "Business Strategy", "Graphic Design",
			"Mathematics", "Physics", "Chemistry", "Biology", "History", "Literature",
		},
		LearningStyles: []Option{
			{ID: "visual", Label: "Visual", Description: "Learn through images, diagrams, and charts"},
			{ID: "auditory", Label: "Auditory", Description: "Learn through listening and discussion"},
			{ID: "reading", Label: "Reading/Writing", Description: "Learn through text and written materials"},
			{ID: "kinesthetic", Label: "Kinesthetic", Description: "Learn through hands-on activities"},
		},
		DifficultyLevels: []Option{
			{ID: "beginner", Label: "Beginner", Description: "New to this topic"},
			{ID: "intermediate", Label: "Intermediate", Description: "Some knowledge and experience"},
			{ID: "advanced", Label: "Advanced", Description: "Experienced and looking to deepen knowledge"},
			{ID: "expert", Label: "Expert", Description: "Highly experienced, seeking specialized knowledge"},
		},
		TimeCommitments: []Option{
			{ID: "15-30", Label: "15-30 minutes"},
			{ID: "30-60", Label: "30-60 minutes"},
			{ID: "1-2", Label: "1-2 hours"},
			{ID: "2+", Label: "2+ hours"},
		},
		ContentFormats: []string{
			"Text explanations", "Video content", "Interactive quizzes", "Downloadable PDFs",
			"Audio/Podcasts", "Visual diagrams", "Hands-on exercises", "Real-world examples",
		},
		TotalSteps: 5,
		StorageKey: ProfileStorageKey,
	}
}

type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Time      string `json:"time"`
}

type WeeklyGoal struct {
	Goal    string  `json:"goal"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

type RecentContent struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Date  string `json:"date"`
}

// Dashboard is sample data only. None of it is computed or persisted.
type Dashboard struct {
	CurrentStreak int             `json:"currentStreak"`
	TotalProgress int             `json:"totalProgress"`
	TodaysTasks   []Task          `json:"todaysTasks"`
	WeeklyGoals   []WeeklyGoal    `json:"weeklyGoals"`
	RecentContent []RecentContent `json:"recentContent"`
}

func SampleDashboard() Dashboard {
	return Dashboard{
		CurrentStreak: 7,
		TotalProgress: 35,
		TodaysTasks: []Task{
			{ID: 1, Title: "Read: Introduction to Machine Learning", Completed: true, Time: "20 min"},
			{ID: 2, Title: "Watch: Linear Regression Explained", Completed: true, Time: "15 min"},
			{ID: 3, Title: "Quiz: Basic ML Concepts", Completed: false, Time: "10 min"},
			{ID: 4, Title: "Practice: Python Data Structures", Completed: false, Time: "30 min"},
		},
		WeeklyGoals: []WeeklyGoal{
			{Goal: "Complete 5 lessons", Current: 3, Target: 5},
			{Goal: "Pass 3 quizzes", Current: 2, Target: 3},
			{Goal: "Study 5 hours", Current: 3.5, Target: 5},
		},
		RecentContent: []RecentContent{
			{Title: "Machine Learning Fundamentals", Type: "PDF", Date: "2 hours ago"},
			{Title: "Python for Data Science", Type: "Video", Date: "1 day ago"},
			{Title: "Statistics Basics", Type: "Article", Date: "2 days ago"},
		},
	}
}
