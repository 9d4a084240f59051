package analysis

import "strings"

// The fallback extractor is the pipeline's safety net: when the model
// backend is down or returns garbage, these tables still produce a
// usable analysis. Matching is case-insensitive substring matching and
// output order is table order, so the result is deterministic for any
// input.

type trigger struct {
	phrase string
	label  string
	advice string
}

var emotionTriggers = []trigger{
	{phrase: "frustrat", label: "frustration", advice: "Frustration shows up in your writing. Step away from the screen before the next entry."},
	{phrase: "angry", label: "anger", advice: "Anger is a poor position sizer. Close the platform until it passes."},
	{phrase: "anger", label: "anger", advice: "Anger is a poor position sizer. Close the platform until it passes."},
	{phrase: "fear", label: "fear", advice: "Fear-driven exits rarely match your plan. Pre-define exits before entering."},
	{phrase: "afraid", label: "fear", advice: "Fear-driven exits rarely match your plan. Pre-define exits before entering."},
	{phrase: "scared", label: "fear", advice: "Fear-driven exits rarely match your plan. Pre-define exits before entering."},
	{phrase: "anxious", label: "anxiety", advice: "Anxiety narrows focus. Reduce size until the setup feels routine again."},
	{phrase: "anxiety", label: "anxiety", advice: "Anxiety narrows focus. Reduce size until the setup feels routine again."},
	{phrase: "panic", label: "panic", advice: "Panic decisions are unplanned decisions. Use hard stops so you never have to act in the moment."},
	{phrase: "greed", label: "greed", advice: "Greed turns winners into losers. Take planned profits at planned levels."},
	{phrase: "euphori", label: "euphoria", advice: "Euphoria after wins invites oversized follow-ups. Keep size constant."},
	{phrase: "hesitat", label: "hesitation", advice: "Hesitation means the setup or the size is wrong. Re-check both before the next trade."},
	{phrase: "regret", label: "regret", advice: "Regret over a closed trade is sunk cost. Grade the process, not the outcome."},
	{phrase: "loss", label: "frustration", advice: "Losses sting. Review whether the loss followed your plan before judging it."},
}

var ruleTriggers = []trigger{
	{phrase: "overtrad", label: "overtrading", advice: "Cap your trades per session and stop when the cap is hit."},
	{phrase: "too many trades", label: "overtrading", advice: "Cap your trades per session and stop when the cap is hit."},
	{phrase: "revenge", label: "revenge trading", advice: "After a loss, take a mandatory break instead of re-entering immediately."},
	{phrase: "ignored my stop", label: "ignored stop loss", advice: "A stop you can move is not a stop. Make them non-negotiable."},
	{phrase: "moved my stop", label: "ignored stop loss", advice: "A stop you can move is not a stop. Make them non-negotiable."},
	{phrase: "no stop", label: "ignored stop loss", advice: "A stop you can move is not a stop. Make them non-negotiable."},
	{phrase: "without a stop", label: "ignored stop loss", advice: "A stop you can move is not a stop. Make them non-negotiable."},
	{phrase: "doubled down", label: "averaging into losers", advice: "Adding to losers converts small mistakes into large ones. Size once."},
	{phrase: "averaged down", label: "averaging into losers", advice: "Adding to losers converts small mistakes into large ones. Size once."},
	{phrase: "oversized", label: "position sizing violation", advice: "Fix position size as a percentage of account before the session starts."},
	{phrase: "too big", label: "position sizing violation", advice: "Fix position size as a percentage of account before the session starts."},
	{phrase: "chased", label: "chasing entries", advice: "If the entry is gone, the trade is gone. Wait for the next setup."},
	{phrase: "broke my rules", label: "plan deviation", advice: "Write the rule you broke on top of tomorrow's journal entry."},
	{phrase: "against my plan", label: "plan deviation", advice: "Write the rule you broke on top of tomorrow's journal entry."},
}

var biasTriggers = []trigger{
	{phrase: "fomo", label: "FOMO", advice: "Missing a move costs nothing. Chasing it does."},
	{phrase: "missing out", label: "FOMO", advice: "Missing a move costs nothing. Chasing it does."},
	{phrase: "confirm", label: "confirmation bias", advice: "Look for one reason the trade is wrong before you look for reasons it is right."},
	{phrase: "anchor", label: "anchoring", advice: "Your entry price means nothing to the market. Judge the position at today's price."},
	{phrase: "everyone was buying", label: "herd mentality", advice: "Crowded trades pay the crowd last. Need your own thesis."},
	{phrase: "sure thing", label: "overconfidence bias", advice: "No trade is a sure thing. Size every position like it can lose."},
	{phrase: "couldn't lose", label: "overconfidence bias", advice: "No trade is a sure thing. Size every position like it can lose."},
	{phrase: "can't lose", label: "overconfidence bias", advice: "No trade is a sure thing. Size every position like it can lose."},
	{phrase: "sunk", label: "sunk cost fallacy", advice: "Money already lost is not an argument for staying in."},
	{phrase: "last time", label: "recency bias", advice: "The last trade has no bearing on this one. Evaluate each setup fresh."},
}

const defaultAdvice = "Keep journaling consistently. Patterns only become visible across many entries."

// Extract runs the keyword tables over the text. It never fails and
// never returns empty advice.
func Extract(text string) Fields {
	lower := strings.ToLower(text)

	var adviceParts []string
	seenAdvice := map[string]bool{}

	collect := func(table []trigger) []string {
		labels := []string{}
		seen := map[string]bool{}
		for _, t := range table {
			if !strings.Contains(lower, t.phrase) {
				continue
			}
			if !seen[t.label] {
				seen[t.label] = true
				labels = append(labels, t.label)
			}
			if t.advice != "" && !seenAdvice[t.advice] {
				seenAdvice[t.advice] = true
				adviceParts = append(adviceParts, t.advice)
			}
		}
		return labels
	}

	emotions := collect(emotionTriggers)
	rules := collect(ruleTriggers)
	biases := collect(biasTriggers)

	advice := strings.Join(adviceParts, " ")
	if advice == "" {
		advice = defaultAdvice
	}

	return Fields{
		Emotions:    emotions,
		RulesBroken: rules,
		Biases:      biases,
		Advice:      advice,
	}
}
