package dsl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/cvpress/resume"
)

// ParseError 带有出错位置，语法错误与未知字段都使用它。
type ParseError struct {
	Pos     lexer.Position
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Decode 解析 .cv 文本并转换为简历文档。
func Decode(r io.Reader) (*resume.Document, error) {
	return decodeNamed("", r)
}

// DecodeFile 读取并解析 .cv 文件，错误位置包含文件名。
func DecodeFile(path string) (*resume.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeNamed(path, f)
}

func decodeNamed(name string, r io.Reader) (*resume.Document, error) {
	file, err := Parse(name, r)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &ParseError{Pos: perr.Position(), Message: perr.Message(), Cause: err}
		}
		return nil, &ParseError{Message: err.Error(), Cause: err}
	}
	return Convert(file)
}

// Convert 将语法树映射为简历文档。未知字段、重复字段以及值类型不符都会返回 ParseError。
func Convert(file *File) (*resume.Document, error) {
	doc := &resume.Document{}
	seen := map[string]bool{}
	for _, e := range file.Entries {
		if seen[e.Key] {
			return nil, errorAt(e, "duplicate section %q", e.Key)
		}
		seen[e.Key] = true

		var err error
		switch e.Key {
		case "personal":
			err = decodeFields(e, map[string]*string{
				"name":           &doc.Personal.Name,
				"phone":          &doc.Personal.Phone,
				"email":          &doc.Personal.Email,
				"linkedin":       &doc.Personal.LinkedIn,
				"linkedinHandle": &doc.Personal.LinkedIn,
			})
		case "objective", "careerObjective":
			doc.Objective, err = scalar(e)
		case "experience":
			doc.Experience, err = decodeItems(e, func(x *resume.Experience) map[string]*string {
				return map[string]*string{"title": &x.Title, "company": &x.Company, "duration": &x.Duration}
			})
		case "education":
			doc.Education, err = decodeItems(e, func(x *resume.Education) map[string]*string {
				return map[string]*string{"degree": &x.Degree, "institution": &x.Institution, "year": &x.Year}
			})
		case "skills":
			doc.Skills, err = decodeItems(e, func(x *resume.Skill) map[string]*string {
				return map[string]*string{"name": &x.Name, "level": &x.Level}
			})
		case "projects":
			doc.Projects, err = decodeItems(e, func(x *resume.Project) map[string]*string {
				return map[string]*string{"name": &x.Name, "description": &x.Description}
			})
		case "certifications":
			doc.Certifications, err = decodeItems(e, func(x *resume.Certification) map[string]*string {
				return map[string]*string{"name": &x.Name, "issuer": &x.Issuer, "year": &x.Year}
			})
		case "achievements":
			doc.Achievements, err = decodeItems(e, func(x *resume.Achievement) map[string]*string {
				return map[string]*string{"title": &x.Title, "description": &x.Description}
			})
		default:
			err = errorAt(e, "unknown section %q", e.Key)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func errorAt(e *Entry, format string, args ...any) *ParseError {
	return &ParseError{Pos: e.Pos, Message: fmt.Sprintf(format, args...)}
}

func scalar(e *Entry) (string, error) {
	if e.Value == nil || e.Block != nil {
		return "", errorAt(e, "%q expects a value (key: \"...\")", e.Key)
	}
	return e.Value.Text(), nil
}

func block(e *Entry) (*Block, error) {
	if e.Block == nil || e.Value != nil {
		return nil, errorAt(e, "%q expects a block (key { ... })", e.Key)
	}
	return e.Block, nil
}

func decodeFields(e *Entry, fields map[string]*string) error {
	blk, err := block(e)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, f := range blk.Entries {
		dst, ok := fields[f.Key]
		if !ok {
			return errorAt(f, "unknown field %q in %s", f.Key, e.Key)
		}
		if seen[f.Key] {
			return errorAt(f, "duplicate field %q in %s", f.Key, e.Key)
		}
		seen[f.Key] = true
		if *dst, err = scalar(f); err != nil {
			return err
		}
	}
	return nil
}

// decodeItems 解析形如 section { item { ... } item { ... } } 的列表，保持输入顺序。
func decodeItems[T any](e *Entry, fields func(*T) map[string]*string) ([]T, error) {
	blk, err := block(e)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(blk.Entries))
	for _, it := range blk.Entries {
		if it.Key != "item" {
			return nil, errorAt(it, "expected item in %s, got %q", e.Key, it.Key)
		}
		var v T
		if err := decodeFields(it, fields(&v)); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
