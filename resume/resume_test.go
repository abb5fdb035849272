package resume

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_IsValid(t *testing.T) {
	doc := Sample()
	require.NoError(t, doc.Validate())

	assert.Len(t, doc.Experience, 1)
	assert.Len(t, doc.Education, 1)
	assert.Len(t, doc.Skills, 3)
	assert.Len(t, doc.Projects, 2)
	assert.Len(t, doc.Certifications, 1)
	assert.Len(t, doc.Achievements, 1)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	doc := &Document{
		Personal:   Personal{Name: "Jane Roe"},
		Experience: []Experience{{Title: "Engineer", Company: ""}},
	}
	err := doc.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "Document.Experience[0].Company")
	assert.Contains(t, fields, "Document.Experience[0].Duration")
}

func TestValidate_EmailFormatIsNotChecked(t *testing.T) {
	doc := &Document{Personal: Personal{Name: "Jane Roe", Email: "not-an-email", Phone: "call me"}}
	assert.NoError(t, doc.Validate())
}

func TestValidate_NilDocument(t *testing.T) {
	var doc *Document
	var verr *ValidationError
	assert.ErrorAs(t, doc.Validate(), &verr)
}

func TestLoadJSON_RoundTripSample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Sample()))

	doc, err := LoadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, Sample(), doc)
}

func TestLoadJSON_RejectsUnknownKeys(t *testing.T) {
	input := `{"personal": {"name": "Jane"}, "hobbies": ["chess"]}`
	_, err := LoadJSON(strings.NewReader(input))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "hobbies")
}

func TestLoadJSON_RejectsWrongTypes(t *testing.T) {
	input := `{"personal": {"name": "Jane"}, "skills": [{"name": 42}]}`
	_, err := LoadJSON(strings.NewReader(input))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "skills.0.name", verr.Errors[0].Field)
}

func TestLoadJSON_MalformedInput(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"personal": `))
	var lerr *LoadError
	assert.ErrorAs(t, err, &lerr)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (&Document{Personal: Personal{Name: "Jane Roe"}}).IsEmpty())
	assert.False(t, Sample().IsEmpty())
	assert.True(t, (*Document)(nil).IsEmpty())
}
