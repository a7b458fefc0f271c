package advisor

import (
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"labor-contract/types"
)

// cleanJSON strips markdown fences and whatever the model wrote around the
// outermost object. ok is false when no object is found.
func cleanJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func decodeObject(raw string) (map[string]any, bool) {
	s, ok := cleanJSON(raw)
	if !ok {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, false
	}
	return m, true
}

func DefaultReview() types.ReviewReport {
	return types.ReviewReport{
		RiskScore: 0,
		RiskLevel: types.RiskCaution,
		Summary:   "검토 결과를 해석하지 못했습니다. 잠시 후 다시 시도해 주세요.",
		Issues:    []types.Issue{},
	}
}

// coerceReview turns whatever the model produced into a complete report.
// ok is false when the output had no decodable object at all.
func coerceReview(raw string) (types.ReviewReport, bool) {
	m, ok := decodeObject(raw)
	if !ok {
		return DefaultReview(), false
	}

	r := types.ReviewReport{Issues: []types.Issue{}}
	score, hasScore := number(m["riskScore"])
	if hasScore {
		r.RiskScore = clamp(int(math.Round(score)), 0, 100)
	}
	r.RiskLevel = riskLevel(str(m["riskLevel"]))
	if r.RiskLevel == "" {
		switch {
		case !hasScore:
			r.RiskLevel = types.RiskCaution
		case r.RiskScore >= 80:
			r.RiskLevel = types.RiskSafe
		case r.RiskScore >= 50:
			r.RiskLevel = types.RiskCaution
		default:
			r.RiskLevel = types.RiskDanger
		}
	}
	r.Summary = str(m["summary"])

	if list, ok := m["issues"].([]any); ok {
		for _, item := range list {
			if is, ok := coerceIssue(item); ok {
				r.Issues = append(r.Issues, is)
			}
		}
	}
	if pl, ok := m["plainLanguageSummary"].(map[string]any); ok {
		r.PlainLanguageSummary = types.PlainLanguageSummary{
			Wage:     str(pl["wage"]),
			WorkTime: str(pl["workTime"]),
			Rights:   str(pl["rights"]),
		}
	}
	return r, true
}

func coerceIssue(v any) (types.Issue, bool) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return types.Issue{}, false
		}
		return types.Issue{Type: types.IssueSuggestion, Message: x}, true
	case map[string]any:
		is := types.Issue{
			Type:           types.IssueSuggestion,
			Message:        str(x["message"]),
			Suggestion:     str(x["suggestion"]),
			LegalReference: str(x["legalReference"]),
		}
		if strings.EqualFold(str(x["type"]), string(types.IssueIllegal)) {
			is.Type = types.IssueIllegal
		}
		if is.Message == "" && is.Suggestion == "" {
			return types.Issue{}, false
		}
		return is, true
	}
	return types.Issue{}, false
}

func riskLevel(s string) types.RiskLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SAFE", "LOW":
		return types.RiskSafe
	case "CAUTION", "MODERATE", "MEDIUM", "WARNING":
		return types.RiskCaution
	case "DANGER", "RISKY", "HIGH":
		return types.RiskDanger
	}
	return ""
}

// coerceClassification reads {isSimpleLabor, categoryName, reason}.
func coerceClassification(raw string) (types.ClassificationResult, bool) {
	m, ok := decodeObject(raw)
	if !ok {
		return types.ClassificationResult{}, false
	}
	res := types.ClassificationResult{Reason: str(m["reason"])}
	switch v := m["isSimpleLabor"].(type) {
	case bool:
		res.IsSimpleLabor = v
	case string:
		res.IsSimpleLabor, _ = strconv.ParseBool(strings.TrimSpace(v))
	}
	if name := strings.TrimSpace(str(m["categoryName"])); name != "" && res.IsSimpleLabor {
		res.CategoryName = &name
	}
	return res, true
}

func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
