package entity

// Field describes a single request field for validation and diagnostics.
type Field struct {
	Name     string
	Value    Text
	Required bool
}

// Request is implemented by every generation request.
type Request interface {
	Endpoint() Endpoint
	// Mode returns the mode enumerator, or "" for endpoints with a single template.
	Mode() string
	Fields() []Field
}

// AnalyzeContentRequest is the body of POST /api/analyze-content.
type AnalyzeContentRequest struct {
	Content      Text `json:"content"`
	ContentType  Text `json:"contentType"`
	UserLevel    Text `json:"userLevel"`
	AnalysisType Text `json:"analysisType"`
}

func (r AnalyzeContentRequest) Endpoint() Endpoint { return EndpointAnalyzeContent }
func (r AnalyzeContentRequest) Mode() string       { return r.AnalysisType.String() }

func (r AnalyzeContentRequest) Fields() []Field {
	return []Field{
		{Name: "content", Value: r.Content, Required: true},
		{Name: "contentType", Value: r.ContentType, Required: true},
		{Name: "userLevel", Value: r.UserLevel, Required: true},
		{Name: "analysisType", Value: r.AnalysisType, Required: true},
	}
}

// GenerateContentRequest is the body of POST /api/generate-content.
type GenerateContentRequest struct {
	Topic         Text `json:"topic"`
	Level         Text `json:"level"`
	LearningStyle Text `json:"learningStyle"`
	ContentType   Text `json:"contentType"`
	SpecificAreas Text `json:"specificAreas"`
}

func (r GenerateContentRequest) Endpoint() Endpoint { return EndpointGenerateContent }
func (r GenerateContentRequest) Mode() string       { return r.ContentType.String() }

func (r GenerateContentRequest) Fields() []Field {
	return []Field{
		{Name: "topic", Value: r.Topic, Required: true},
		{Name: "level", Value: r.Level, Required: true},
		{Name: "contentType", Value: r.ContentType, Required: true},
		{Name: "learningStyle", Value: r.LearningStyle},
		{Name: "specificAreas", Value: r.SpecificAreas},
	}
}

// RecommendationRequest is the body of POST /api/recommendations.
type RecommendationRequest struct {
	Topic    Text `json:"topic"`
	Level    Text `json:"level"`
	Goals    Text `json:"goals"`
	Progress Text `json:"progress"`
}

func (r RecommendationRequest) Endpoint() Endpoint { return EndpointRecommendations }
func (r RecommendationRequest) Mode() string       { return "" }

func (r RecommendationRequest) Fields() []Field {
	return []Field{
		{Name: "topic", Value: r.Topic, Required: true},
		{Name: "level", Value: r.Level, Required: true},
		{Name: "goals", Value: r.Goals, Required: true},
		{Name: "progress", Value: r.Progress, Required: true},
	}
}

// ScheduleRequest is the body of POST /api/schedule.
type ScheduleRequest struct {
	Topic          Text `json:"topic"`
	TimeCommitment Text `json:"timeCommitment"`
	Deadline       Text `json:"deadline"`
	CurrentLevel   Text `json:"currentLevel"`
	Goals          Text `json:"goals"`
	LearningStyle  Text `json:"learningStyle"`
}

func (r ScheduleRequest) Endpoint() Endpoint { return EndpointSchedule }
func (r ScheduleRequest) Mode() string       { return "" }

func (r ScheduleRequest) Fields() []Field {
	return []Field{
		{Name: "topic", Value: r.Topic, Required: true},
		{Name: "timeCommitment", Value: r.TimeCommitment, Required: true},
		{Name: "currentLevel", Value: r.CurrentLevel, Required: true},
		{Name: "goals", Value: r.Goals, Required: true},
		{Name: "learningStyle", Value: r.LearningStyle, Required: true},
		{Name: "deadline", Value: r.Deadline},
	}
}

var (
	_ Request = AnalyzeContentRequest{}
	_ Request = GenerateContentRequest{}
	_ Request = RecommendationRequest{}
	_ Request = ScheduleRequest{}
)
