package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "valid_document.json"))
	require.NoError(t, err)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.Name)
	require.Len(t, doc.Skills, 2)
	assert.Equal(t, "advanced", doc.Skills[1].Level)
	assert.True(t, doc.CustomSections[0].InSecondaryColumn())
}

func TestDecodeDocument_SchemaFailure(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"skills": [true]}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDecodeDocument_FieldRuleFailure(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"personal_info": {"email": "not-an-email"}}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "personal_info.email", verr.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", verr.Errors[0].Message)
}
