package llm

import (
	"embed"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/soartravel/soar/errors"
	"github.com/soartravel/soar/internal/sliceutils"
	"github.com/soartravel/soar/memory"
)

const (
	DateLayout = "January 2, 2006"

	maxPromptMemories = 3

	classifierSystemPrompt     = "You are a message classifier that determines the type of user message."
	acknowledgmentSystemPrompt = "You are a helpful travel assistant chatbot that responds to users in a friendly, conversational way."
)

var (
	//go:embed data/prompts/*.md.tmpl
	promptFS    embed.FS
	promptTmpls = template.Must(template.New("").Funcs(sprig.TxtFuncMap()).ParseFS(promptFS, "data/prompts/*.md.tmpl"))
)

type (
	classifyPrompt struct {
		Message string
	}

	responsePrompt struct {
		Today    string
		Query    string
		Memories []memory.Record
	}

	acknowledgmentPrompt struct {
		Statement string
	}

	reformatPrompt struct {
		Today   string
		Query   string
		Results string
	}
)

func renderPrompt(name string, data any) (string, error) {
	var buf strings.Builder
	if err := promptTmpls.ExecuteTemplate(&buf, name+".md.tmpl", data); err != nil {
		return "", errors.InvalidRequest(err, "failed to render %s prompt", name)
	}
	return strings.TrimSpace(buf.String()), nil
}

func ClassifyPrompt(message string) (string, error) {
	return renderPrompt("classify", classifyPrompt{Message: message})
}

// ResponsePrompt embeds today's date and at most three memories, numbered from 1, in the order given.
func ResponsePrompt(now time.Time, query string, memories []memory.Record) (string, error) {
	return renderPrompt("response", responsePrompt{
		Today:    now.Format(DateLayout),
		Query:    query,
		Memories: sliceutils.Head(memories, maxPromptMemories),
	})
}

func AcknowledgmentPrompt(statement string) (string, error) {
	return renderPrompt("acknowledgment", acknowledgmentPrompt{Statement: statement})
}

func ReformatPrompt(now time.Time, rawResults string, query string) (string, error) {
	return renderPrompt("reformat", reformatPrompt{
		Today:   now.Format(DateLayout),
		Query:   query,
		Results: rawResults,
	})
}

func responseSystemPrompt() (string, error) {
	return renderPrompt("response_system", nil)
}

func searchSystemPrompt() (string, error) {
	return renderPrompt("search_system", nil)
}
