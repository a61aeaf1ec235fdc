package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/models"
)

// ask handles "ask": reads a question, sends it through the query service
// and prints the answer with its sources.
func (a *App) ask(ctx context.Context) {
	question, err := GetMultiline(a.reader, "Your question", a.out)
	if err != nil || question == "" {
		fmt.Fprintln(a.out, "A question is required.")
		return
	}
	department, _ := getSimpleText(a.reader, "Department filter (optional)", a.out)

	result, err := a.queries.Ask(ctx, question, department)
	if err != nil {
		fmt.Fprintln(a.out, "Query failed:", messageFor(err))
		return
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, result.Answer)
	if result.Message != "" {
		fmt.Fprintln(a.out, result.Message)
	}
	if len(result.Sources) > 0 {
		fmt.Fprintln(a.out, "\nSources:")
		for _, src := range result.Sources {
			fmt.Fprintf(a.out, "  [%d] %s v%d (score %.2f)\n",
				src.Rank, src.DocumentTitle, src.VersionNumber, src.SimilarityScore)
		}
	}
	fmt.Fprintf(a.out, "\nquery #%d, %d tokens, %d ms\n",
		result.QueryID, result.TokensUsed, result.ResponseTimeMs)
}

// history handles "history [page]".
func (a *App) history(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
		}
	}

	result, err := a.queries.History(ctx, page)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching history failed:", messageFor(err))
		return
	}

	if result.Offline {
		fmt.Fprintln(a.out, "Server unreachable, showing locally cached answers.")
	}
	if len(result.Queries) == 0 {
		fmt.Fprintln(a.out, "No queries yet.")
		return
	}

	for _, q := range result.Queries {
		status := "ok"
		if !q.WasSuccessful {
			status = "failed"
		}
		fmt.Fprintf(a.out, "%5d  %-6s %s\n", q.ID, status, q.Question)
	}
	if result.HasNext {
		fmt.Fprintf(a.out, "More available: history %d\n", page+1)
	}
}

// showQuery handles "query <id>": prints one past question with its full
// answer.
func (a *App) showQuery(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: query <id>")
		return
	}

	q, err := a.api.GetQuery(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching query failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Q: %s\n\n%s\n", q.Question, q.Answer)
	fmt.Fprintf(a.out, "\n%d tokens, %d ms, %s\n", q.TokensUsed, q.ResponseTimeMs, q.CreatedAt)
}

// feedback handles "feedback <query-id>".
func (a *App) feedback(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: feedback <query-id>")
		return
	}

	kind, err := getSimpleText(a.reader, "Verdict: (h)elpful, (n)ot helpful, ha(l)lucination", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}

	var fbType models.FeedbackType
	switch kind {
	case "h", "helpful":
		fbType = models.FeedbackHelpful
	case "n", "not", "not-helpful":
		fbType = models.FeedbackNotHelpful
	case "l", "hallucination":
		fbType = models.FeedbackHallucination
	default:
		fmt.Fprintln(a.out, "Unknown verdict:", kind)
		return
	}

	comment, _ := GetMultiline(a.reader, "Comment (optional)", a.out)

	if _, err := a.queries.SubmitFeedback(ctx, id, fbType, comment); err != nil {
		fmt.Fprintln(a.out, "Submitting feedback failed:", messageFor(err))
		return
	}
	fmt.Fprintln(a.out, "Feedback recorded.")
}

// queryLog handles "queries [page]": the platform-wide query log for
// admins and reviewers.
func (a *App) queryLog(ctx context.Context, args []string) {
	if !a.session.HasRole(models.RoleAdmin, models.RoleReviewer) {
		fmt.Fprintln(a.out, "The query log requires the ADMIN or REVIEWER role.")
		return
	}

	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
		}
	}

	result, err := a.api.QueryAnalytics(ctx, page)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching query log failed:", messageFor(err))
		return
	}

	for _, q := range result.Results {
		status := "ok"
		if !q.WasSuccessful {
			status = "failed"
		}
		fmt.Fprintf(a.out, "%5d  %-12s %-6s %s\n", q.ID, q.UserUsername, status, q.Question)
	}
	fmt.Fprintf(a.out, "%d quer(ies) total\n", result.Count)
}

// listFeedback handles "reviews [page]". Reviewers and admins see the
// feedback queue.
func (a *App) listFeedback(ctx context.Context, args []string) {
	if !a.session.HasRole(models.RoleAdmin, models.RoleReviewer) {
		fmt.Fprintln(a.out, "Reviewing feedback requires the ADMIN or REVIEWER role.")
		return
	}

	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
		}
	}

	result, err := a.api.ListFeedback(ctx, page)
	if err != nil {
		fmt.Fprintln(a.out, "Listing feedback failed:", messageFor(err))
		return
	}
	if len(result.Results) == 0 {
		fmt.Fprintln(a.out, "No feedback.")
		return
	}

	for _, fb := range result.Results {
		state := "open"
		if fb.IsReviewed {
			state = "reviewed"
		}
		fmt.Fprintf(a.out, "%5d  %-13s %-8s q#%-5d %s\n",
			fb.ID, fb.FeedbackType, state, fb.Query, fb.Comment)
	}
}

// reviewFeedback handles "review <id>": marks a feedback entry reviewed.
func (a *App) reviewFeedback(ctx context.Context, args []string) {
	if !a.session.HasRole(models.RoleAdmin, models.RoleReviewer) {
		fmt.Fprintln(a.out, "Reviewing feedback requires the ADMIN or REVIEWER role.")
		return
	}

	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: review <id>")
		return
	}

	if err := a.api.ReviewFeedback(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Marking feedback reviewed failed:", messageFor(err))
		return
	}
	fmt.Fprintf(a.out, "Feedback %d marked reviewed.\n", id)
}
