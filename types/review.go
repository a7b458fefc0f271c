package types

// --- 상수 정의 ---

type RiskLevel string

const (
	RiskSafe    RiskLevel = "SAFE"
	RiskCaution RiskLevel = "CAUTION"
	RiskDanger  RiskLevel = "DANGER"
)

type IssueType string

const (
	IssueIllegal    IssueType = "ILLEGAL"
	IssueSuggestion IssueType = "SUGGESTION"
)

// --- 구조체 정의 ---

type Issue struct {
	Type           IssueType `json:"type"`
	Message        string    `json:"message"`
	Suggestion     string    `json:"suggestion"`
	LegalReference string    `json:"legalReference"`
}

type PlainLanguageSummary struct {
	Wage     string `json:"wage"`
	WorkTime string `json:"workTime"`
	Rights   string `json:"rights"`
}

// ReviewReport is the strict form of the model's legality review. Every
// field has a usable zero value.
type ReviewReport struct {
	RiskScore            int                  `json:"riskScore"` // 0..100, higher is safer
	RiskLevel            RiskLevel            `json:"riskLevel"`
	Summary              string               `json:"summary"`
	Issues               []Issue              `json:"issues"`
	PlainLanguageSummary PlainLanguageSummary `json:"plainLanguageSummary"`
}

// ClassificationResult says whether a job description falls under simple
// (elementary) labor.
type ClassificationResult struct {
	IsSimpleLabor bool    `json:"isSimpleLabor"`
	CategoryName  *string `json:"categoryName"`
	Reason        string  `json:"reason"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// Occupation is one entry of the KSCO elementary occupations table.
type Occupation struct {
	Code      string  `json:"code"`
	Group     string  `json:"group"`
	GroupName string  `json:"groupName"`
	Name      string  `json:"name"`
	Score     float64 `json:"score,omitempty"`
}
