package dsl_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/cvpress/dsl"
	"github.com/ByLCY/cvpress/resume"
)

const sampleCV = `
// 简历示例
resume {
  personal {
    name: "Jane Roe"
    email: "jane.roe@example.com"
    linkedinHandle: "janeroe"
  }

  objective: "Backend engineer."

  experience {
    item { title: "Software Engineer"; company: "Acme"; duration: "2021 - Present" }
    item {
      title: "Intern"
      company: "Initech"
    }
  }

  education {
    item { degree: "B.Sc."; institution: "State University"; year: 2021 }
  }

  /* 技能 */
  skills {
    item { name: "Go"; level: "Advanced" }
    item { name: "SQL" }
  }
}
`

func TestParseFile(t *testing.T) {
	file, err := dsl.ParseString(sampleCV)
	require.NoError(t, err)
	require.Len(t, file.Entries, 5)
	assert.Equal(t, "personal", file.Entries[0].Key)
	require.NotNil(t, file.Entries[0].Block)
	assert.Equal(t, "objective", file.Entries[1].Key)
	assert.Equal(t, "Backend engineer.", file.Entries[1].Value.Text())
}

func TestDecode(t *testing.T) {
	doc, err := dsl.Decode(strings.NewReader(sampleCV))
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", doc.Personal.Name)
	assert.Equal(t, "janeroe", doc.Personal.LinkedIn)
	assert.Empty(t, doc.Personal.Phone)
	assert.Equal(t, "Backend engineer.", doc.Objective)
	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "Intern", doc.Experience[1].Title)
	assert.Empty(t, doc.Experience[1].Duration)
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "2021", doc.Education[0].Year)
	assert.Equal(t, []resume.Skill{{Name: "Go", Level: "Advanced"}, {Name: "SQL"}}, doc.Skills)
	assert.Empty(t, doc.Projects)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cases := map[string]string{
		"unknown section": `resume {
  hobbies { item { name: "chess" } }
}`,
		"unknown field": `resume {
  personal {
    name: "Jane"
    age: 30
  }
}`,
		"scalar instead of block": `resume {
  skills: "Go"
}`,
		"not an item": `resume {
  skills { skill { name: "Go" } }
}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dsl.Decode(strings.NewReader(src))
			var perr *dsl.ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
			assert.Greater(t, perr.Pos.Line, 1)
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := dsl.Decode(strings.NewReader("resume {\n  personal { name: }\n}"))
	var perr *dsl.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
	assert.NotNil(t, perr.Unwrap())
}

func TestEncodeDecodeSample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dsl.Encode(&buf, resume.Sample()))
	doc, err := dsl.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, resume.Sample(), doc)
}
