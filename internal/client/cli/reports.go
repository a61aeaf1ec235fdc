package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/api"
	"github.com/hhsksonu/kpcli/internal/client/models"
)

// analytics handles "analytics". Admins and reviewers get the system-wide
// snapshot; everyone else sees their own usage summary.
func (a *App) analytics(ctx context.Context) {
	if a.session.HasRole(models.RoleAdmin, models.RoleReviewer) {
		a.systemStats(ctx)
		return
	}
	a.myAnalytics(ctx)
}

func (a *App) systemStats(ctx context.Context) {
	stats, err := a.api.SystemStats(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching analytics failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Documents: %d total, %d approved, %d pending\n",
		stats.Documents.Total, stats.Documents.Approved, stats.Documents.Pending)
	fmt.Fprintf(a.out, "Queries:   %d total, %.1f%% successful\n",
		stats.Queries.Total, stats.Queries.SuccessRate)
	fmt.Fprintf(a.out, "Tokens:    %d used\n", stats.Tokens.TotalUsed)
	fmt.Fprintf(a.out, "Users:     %d active\n", stats.Users.TotalActive)
	fmt.Fprintf(a.out, "Feedback:  %d total, %d helpful, %d hallucination reports\n",
		stats.Feedback.Total, stats.Feedback.Helpful, stats.Feedback.HallucinationReports)
}

func (a *App) myAnalytics(ctx context.Context) {
	me, err := a.api.MyAnalytics(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching analytics failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Queries: %d total, %d today, %d remaining today\n",
		me.Queries.Total, me.Queries.Today, me.Queries.RemainingToday)
	fmt.Fprintf(a.out, "Tokens used: %d, feedback given: %d\n", me.TokensUsed, me.FeedbackGiven)
	for _, q := range me.RecentQueries {
		fmt.Fprintf(a.out, "  %5d %s\n", q.ID, q.Question)
	}
}

// listUsers handles "users [page]". ADMIN only.
func (a *App) listUsers(ctx context.Context, args []string) {
	if !a.session.HasRole(models.RoleAdmin) {
		fmt.Fprintln(a.out, "Listing users requires the ADMIN role.")
		return
	}

	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
		}
	}

	result, err := a.api.ListUsers(ctx, page)
	if err != nil {
		fmt.Fprintln(a.out, "Listing users failed:", messageFor(err))
		return
	}

	for _, u := range result.Results {
		active := "active"
		if !u.IsActive {
			active = "disabled"
		}
		fmt.Fprintf(a.out, "%5d  %-15s %-13s %-8s %s\n", u.ID, u.Username, u.Role, active, u.Email)
	}
	fmt.Fprintf(a.out, "%d user(s) total\n", result.Count)
}

// audit handles "audit [action]". ADMIN only.
func (a *App) audit(ctx context.Context, args []string) {
	if !a.session.HasRole(models.RoleAdmin) {
		fmt.Fprintln(a.out, "Audit logs require the ADMIN role.")
		return
	}

	filter := api.AuditFilter{}
	if len(args) > 0 {
		filter.Action = args[0]
	}

	page, err := a.api.AuditLogs(ctx, filter)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching audit logs failed:", messageFor(err))
		return
	}
	if len(page.Results) == 0 {
		fmt.Fprintln(a.out, "No audit entries.")
		return
	}

	for _, entry := range page.Results {
		fmt.Fprintf(a.out, "%s  %-12s %-10s %-8s %s\n",
			entry.Timestamp, entry.UserUsername, entry.Action, entry.ResourceType, entry.ResourceID)
	}
	fmt.Fprintf(a.out, "%d entr(ies) total\n", page.Count)
}
