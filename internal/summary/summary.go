// Package summary turns a computed result table into narrative
// commentary via an LLM provider.
package summary

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mkersting/aftermath/internal/core"
	"github.com/mkersting/aftermath/internal/llm"
	"github.com/mkersting/aftermath/internal/report"
)

const systemPrompt = `You are a financial analyst. You are given a table of
compound annual growth rates (CAGR) of an equity index measured after
historical geopolitical events, at several forward horizons. Summarize the
broad pattern in plain language: typical magnitudes, notable outliers, and
horizons that could not be measured. Do not invent numbers that are not in
the table. Keep it under 300 words.`

// Summarize asks the provider for commentary on the table. The table is
// shipped as CSV, the same layout the results file uses.
func Summarize(ctx context.Context, provider llm.Provider, table *core.Table, horizons []int) (string, error) {
	if len(table.Rows) == 0 {
		return "", core.WrapError(core.ErrLLMFailed, fmt.Errorf("nothing to summarize: table has no rows"))
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, table, horizons); err != nil {
		return "", err
	}

	resp, err := provider.Chat(ctx, llm.ChatRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: "CAGR results after geopolitical events:\n\n" + buf.String()},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		return "", core.WrapError(core.ErrLLMFailed, err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", core.WrapError(core.ErrLLMFailed, fmt.Errorf("provider %s returned empty content", provider.Name()))
	}
	return text, nil
}
