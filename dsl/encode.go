package dsl

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/cvpress/resume"
)

type field struct {
	key, value string
}

// Encode 将简历文档写为 .cv 文本；空字段与空分区被省略。
func Encode(w io.Writer, doc *resume.Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("resume {\n")

	writeBlock(bw, "personal", []field{
		{"name", doc.Personal.Name},
		{"phone", doc.Personal.Phone},
		{"email", doc.Personal.Email},
		{"linkedin", doc.Personal.LinkedIn},
	})
	if doc.Objective != "" {
		bw.WriteString("  objective: " + strconv.Quote(doc.Objective) + "\n")
	}

	var items [][]field
	for _, x := range doc.Experience {
		items = append(items, []field{{"title", x.Title}, {"company", x.Company}, {"duration", x.Duration}})
	}
	writeItems(bw, "experience", items)

	items = items[:0]
	for _, x := range doc.Education {
		items = append(items, []field{{"degree", x.Degree}, {"institution", x.Institution}, {"year", x.Year}})
	}
	writeItems(bw, "education", items)

	items = items[:0]
	for _, x := range doc.Skills {
		items = append(items, []field{{"name", x.Name}, {"level", x.Level}})
	}
	writeItems(bw, "skills", items)

	items = items[:0]
	for _, x := range doc.Projects {
		items = append(items, []field{{"name", x.Name}, {"description", x.Description}})
	}
	writeItems(bw, "projects", items)

	items = items[:0]
	for _, x := range doc.Certifications {
		items = append(items, []field{{"name", x.Name}, {"issuer", x.Issuer}, {"year", x.Year}})
	}
	writeItems(bw, "certifications", items)

	items = items[:0]
	for _, x := range doc.Achievements {
		items = append(items, []field{{"title", x.Title}, {"description", x.Description}})
	}
	writeItems(bw, "achievements", items)

	bw.WriteString("}\n")
	return bw.Flush()
}

func writeBlock(w *bufio.Writer, key string, fields []field) {
	w.WriteString("  " + key + " {\n")
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		w.WriteString("    " + f.key + ": " + strconv.Quote(f.value) + "\n")
	}
	w.WriteString("  }\n")
}

func writeItems(w *bufio.Writer, key string, items [][]field) {
	if len(items) == 0 {
		return
	}
	w.WriteString("  " + key + " {\n")
	for _, it := range items {
		parts := make([]string, 0, len(it))
		for _, f := range it {
			if f.value != "" {
				parts = append(parts, f.key+": "+strconv.Quote(f.value))
			}
		}
		w.WriteString("    item { " + strings.Join(parts, "; ") + " }\n")
	}
	w.WriteString("  }\n")
}
