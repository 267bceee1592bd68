package entity

// Endpoint identifies one of the generation pipelines.
type Endpoint string

const (
	EndpointAnalyzeContent  Endpoint = "analyze-content"
	EndpointGenerateContent Endpoint = "generate-content"
	EndpointRecommendations Endpoint = "recommendations"
	EndpointSchedule        Endpoint = "schedule"
)

// Endpoints lists every generation endpoint in route order.
var Endpoints = []Endpoint{
	EndpointAnalyzeContent,
	EndpointGenerateContent,
	EndpointRecommendations,
	EndpointSchedule,
}

// Action is the gerund used in diagnostic log lines, e.g. "Error analyzing content".
func (e Endpoint) Action() string {
	switch e {
	case EndpointAnalyzeContent:
		return "analyzing content"
	case EndpointGenerateContent:
		return "generating content"
	case EndpointRecommendations:
		return "generating recommendations"
	case EndpointSchedule:
		return "generating schedule"
	default:
		return "handling request"
	}
}

// FailureMessage is the static body returned to callers on any failure.
func (e Endpoint) FailureMessage() string {
	switch e {
	case EndpointAnalyzeContent:
		return "Failed to analyze content"
	case EndpointGenerateContent:
		return "Failed to generate content"
	case EndpointRecommendations:
		return "Failed to generate recommendations"
	case EndpointSchedule:
		return "Failed to generate schedule"
	default:
		return "Request failed"
	}
}

func (e Endpoint) Valid() bool {
	for _, known := range Endpoints {
		if e == known {
			return true
		}
	}
	return false
}
