package chat

import (
	"encoding/json"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

const topCountriesInPrompt = 10

// buildSystemPrompt renders the dashboard snapshot into the assistant's
// system instruction. The snapshot may be nil before the first refresh; the
// assistant then answers without figures rather than failing the session.
func buildSystemPrompt(global *model.GlobalSnapshot, countries []model.CountryRecord) (string, error) {
	prompt := "You are the assistant of a COVID-19 analytics dashboard. " +
		"Answer questions about the pandemic using the data below. " +
		"When the data does not cover a question, say so instead of guessing.\n"

	if global == nil {
		return prompt + "\nNo data has been loaded yet.", nil
	}

	globalData, err := json.MarshalIndent(global, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal global snapshot")
	}

	top := make([]model.CountryRecord, len(countries))
	copy(top, countries)
	sort.Slice(top, func(i, j int) bool { return top[i].Cases > top[j].Cases })
	if len(top) > topCountriesInPrompt {
		top = top[:topCountriesInPrompt]
	}
	topData, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal country records")
	}

	return prompt +
		"\nGlobal summary:\n" + string(globalData) +
		"\n\nMost affected countries:\n" + string(topData) + "\n", nil
}
