package loaders

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"

	"labor-contract/types"
	"labor-contract/vars"
)

// 元数据字段
const (
	MetaCode      = "code"
	MetaGroup     = "group"
	MetaGroupName = "group_name"
	MetaName      = "name"
)

var (
	groupLine      = regexp.MustCompile(`^(\d{2})\.\s+(.+)$`)
	occupationLine = regexp.MustCompile(`^-\s+(\d{5})\s+(.+)$`)
)

// CatalogLoader loads the KSCO elementary occupations table as one document
// per occupation. An empty source URI means the built-in table.
type CatalogLoader struct {
	files document.Loader
}

var _ document.Loader = (*CatalogLoader)(nil)

func NewCatalogLoader(ctx context.Context) (*CatalogLoader, error) {
	fl, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("new file loader: %w", err)
	}
	return &CatalogLoader{files: fl}, nil
}

func (l *CatalogLoader) Load(ctx context.Context, src document.Source, opts ...document.LoaderOption) ([]*schema.Document, error) {
	if src.URI == "" {
		return ParseGuide(vars.KSCO_GUIDE), nil
	}
	raw, err := l.files.Load(ctx, src, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.URI, err)
	}
	var docs []*schema.Document
	for _, d := range raw {
		docs = append(docs, ParseGuide(d.Content)...)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no occupations found in %s", src.URI)
	}
	return docs, nil
}

// ParseGuide reads "NN. 그룹명" group lines and "- NNNNN 직업명" occupation
// lines. Everything else is ignored.
func ParseGuide(text string) []*schema.Document {
	var (
		docs      []*schema.Document
		group     string
		groupName string
		seen      = map[string]bool{}
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := groupLine.FindStringSubmatch(line); m != nil {
			group, groupName = m[1], koreanName(m[2])
			continue
		}
		m := occupationLine.FindStringSubmatch(line)
		if m == nil || seen[m[1]] {
			continue
		}
		code, full := m[1], strings.TrimSpace(m[2])
		seen[code] = true

		g, gn := code[:2], ""
		if g == group {
			gn = groupName
		}
		docs = append(docs, &schema.Document{
			ID:      code,
			Content: fmt.Sprintf("%s %s / %s", code, full, gn),
			MetaData: map[string]any{
				MetaCode:      code,
				MetaGroup:     g,
				MetaGroupName: gn,
				MetaName:      koreanName(full),
			},
		})
	}
	return docs
}

// koreanName drops a trailing "(English Name)".
func koreanName(s string) string {
	if i := strings.Index(s, " ("); i > 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

// ToOccupation reads a catalog document back into an Occupation.
func ToOccupation(doc *schema.Document) types.Occupation {
	o := types.Occupation{Code: doc.ID, Score: doc.Score()}
	if v, ok := doc.MetaData[MetaCode].(string); ok && v != "" {
		o.Code = v
	}
	o.Group, _ = doc.MetaData[MetaGroup].(string)
	o.GroupName, _ = doc.MetaData[MetaGroupName].(string)
	o.Name, _ = doc.MetaData[MetaName].(string)
	return o
}
