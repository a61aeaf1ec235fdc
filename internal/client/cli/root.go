package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) prompt() string {
	user := a.session.User()
	if user == nil {
		return "kp> "
	}
	return fmt.Sprintf("kp (%s %s)> ", user.Username, user.Role)
}

// Root runs the interactive command loop until "exit" or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Knowledge Platform CLI (type 'help' for commands)")
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", user.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if a.expired.CompareAndSwap(true, false) {
			fmt.Fprintln(a.out, "Session expired, please log in again.")
		}

		fmt.Fprint(a.out, a.prompt())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "menu":
			a.menu()
		case "login":
			a.login(ctx)
		case "register":
			a.register(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "profile":
			a.profile(ctx)
		case "update":
			a.updateProfile(ctx)
		case "passwd":
			a.changePassword(ctx)
		case "docs":
			a.listDocuments(ctx, args)
		case "doc":
			a.showDocument(ctx, args)
		case "upload":
			a.uploadDocument(ctx)
		case "edit":
			a.editDocument(ctx, args)
		case "newversion":
			a.newDocumentVersion(ctx, args)
		case "version":
			a.versionStatus(ctx, args)
		case "approve":
			a.moderateDocument(ctx, args, "approve")
		case "reject":
			a.moderateDocument(ctx, args, "reject")
		case "delete":
			a.deleteDocument(ctx, args)
		case "ask":
			a.ask(ctx)
		case "history":
			a.history(ctx, args)
		case "query":
			a.showQuery(ctx, args)
		case "feedback":
			a.feedback(ctx, args)
		case "queries":
			a.queryLog(ctx, args)
		case "reviews":
			a.listFeedback(ctx, args)
		case "review":
			a.reviewFeedback(ctx, args)
		case "users":
			a.listUsers(ctx, args)
		case "analytics":
			a.analytics(ctx)
		case "audit":
			a.audit(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if !a.session.IsAuthenticated(context.Background()) {
		fmt.Fprintln(a.out, "Available commands: login, register, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: menu, whoami, profile, update, passwd,")
	fmt.Fprintln(a.out, "  docs, doc <id>, upload, edit <id>, newversion <id> <file>, version <id>,")
	fmt.Fprintln(a.out, "  approve <id>, reject <id>, delete <id>,")
	fmt.Fprintln(a.out, "  ask, history, query <id>, feedback <query-id>, queries, reviews, review <id>,")
	fmt.Fprintln(a.out, "  analytics, audit, users, logout, exit")
}
