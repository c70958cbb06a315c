package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "personal_info": {"name": "Jane Doe", "summary": "Backend engineer", "email": "jane@example.com", "phone": "555-0100"},
  "experience": [
    {"company": "Acme", "role": "SRE", "description": "Kept the lights on"},
    {"company": "Globex", "role": "Engineer", "description": "Built the billing pipeline"}
  ],
  "education": [{"school": "State University", "degree": "BSc", "field": "Computer Science"}],
  "skills": ["Go", {"name": "PostgreSQL", "level": "advanced"}],
  "languages": [{"name": "English", "proficiency": "native"}],
  "custom_sections": [{"title": "Awards", "content": "Best paper", "placement": "secondary"}]
}`

// writeFile writes content into dir and returns the path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
