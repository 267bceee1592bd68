package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnassist/internal/domain/entity"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPromptCmd_ScheduleFromStdin(t *testing.T) {
	out, errOut, err := execute(t,
		`{"topic":"Go","timeCommitment":"1-2","currentLevel":"beginner","goals":"ship","learningStyle":"visual"}`,
		"prompt", "schedule")
	require.NoError(t, err)

	assert.Contains(t, out, "== system ==\nYou are an expert learning schedule planner.")
	assert.Contains(t, out, "Target Completion: No specific deadline")
	assert.Empty(t, errOut)
}

func TestPromptCmd_FileAndJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"content":"notes","contentType":"article","userLevel":"beginner","analysisType":"quiz"}`), 0o644))

	out, _, err := execute(t, "", "prompt", "analyze", "-f", path, "--json")
	require.NoError(t, err)

	var p entity.Prompt
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Contains(t, p.User, "Create a quiz with 5-8 questions")
}

func TestPromptCmd_Warnings(t *testing.T) {
	out, errOut, err := execute(t, `{"topic":"Go","contentType":"mindmap"}`, "prompt", "generate")
	require.NoError(t, err)

	assert.Contains(t, out, `Create mindmap content for learning "Go" at  level.`)
	assert.Contains(t, errOut, "warning: missing required fields: level")
	assert.Contains(t, errOut, `warning: mode "mindmap" adds no instructions`)
}

func TestPromptCmd_Errors(t *testing.T) {
	_, _, err := execute(t, "", "prompt", "summarize")
	assert.Error(t, err)

	_, _, err = execute(t, "{", "prompt", "recommend")
	assert.Error(t, err)

	_, _, err = execute(t, "", "prompt", "recommend", "-f", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
