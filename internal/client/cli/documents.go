package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hhsksonu/kpcli/internal/client/api"
	"github.com/hhsksonu/kpcli/internal/client/models"
)

// listDocuments handles "docs [search terms]".
func (a *App) listDocuments(ctx context.Context, args []string) {
	filter := api.DocumentFilter{Search: strings.Join(args, " ")}

	page, err := a.api.ListDocuments(ctx, filter)
	if err != nil {
		fmt.Fprintln(a.out, "Listing documents failed:", messageFor(err))
		return
	}
	if len(page.Results) == 0 {
		fmt.Fprintln(a.out, "No documents found.")
		return
	}

	for _, doc := range page.Results {
		fmt.Fprintf(a.out, "%5d  %-10s v%-3d %-30s %s\n",
			doc.ID, doc.Status, doc.CurrentVersion, doc.Title, doc.OwnerUsername)
	}
	fmt.Fprintf(a.out, "%d document(s) total\n", page.Count)
}

// showDocument handles "doc <id>".
func (a *App) showDocument(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: doc <id>")
		return
	}

	doc, err := a.api.GetDocument(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching document failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Title:       %s\n", doc.Title)
	fmt.Fprintf(a.out, "Status:      %s\n", doc.Status)
	fmt.Fprintf(a.out, "Owner:       %s\n", doc.OwnerUsername)
	fmt.Fprintf(a.out, "Department:  %s\n", doc.Department)
	if len(doc.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags:        %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", doc.Description)
	}
	for _, v := range doc.Versions {
		fmt.Fprintf(a.out, "  v%-3d %-12s chunks=%-4d %s\n",
			v.VersionNumber, v.ProcessingStatus, v.TotalChunks, v.CreatedAt)
		if v.ErrorMessage != "" {
			fmt.Fprintf(a.out, "       error: %s\n", v.ErrorMessage)
		}
	}
}

// uploadDocument handles "upload": prompts for metadata and a local file
// path, then pushes the first version.
func (a *App) uploadDocument(ctx context.Context) {
	if !a.session.HasRole(models.RoleAdmin, models.RoleContentOwner) {
		fmt.Fprintln(a.out, "Uploading requires the ADMIN or CONTENT_OWNER role.")
		return
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil || title == "" {
		fmt.Fprintln(a.out, "A title is required.")
		return
	}
	description, _ := getSimpleText(a.reader, "Description (optional)", a.out)
	department, _ := getSimpleText(a.reader, "Department (optional)", a.out)
	tagLine, _ := getSimpleText(a.reader, "Tags, comma separated (optional)", a.out)

	path, err := getSimpleText(a.reader, "File path", a.out)
	if err != nil || path == "" {
		fmt.Fprintln(a.out, "A file is required.")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Reading file failed:", err)
		return
	}

	var tags []string
	for _, t := range strings.Split(tagLine, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	result, err := a.api.UploadDocument(ctx, api.DocumentUpload{
		Title:       title,
		Description: description,
		Department:  department,
		Tags:        tags,
		FileName:    filepath.Base(path),
		FileData:    data,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Upload failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Uploaded document %d (version %d, %s)\n",
		result.Document.ID, result.Version.VersionNumber, result.Version.ProcessingStatus)
}

// editDocument handles "edit <id>": updates document metadata. Empty
// answers keep the current value.
func (a *App) editDocument(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return
	}

	doc, err := a.api.GetDocument(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching document failed:", messageFor(err))
		return
	}

	upd := models.DocumentUpdate{}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", doc.Title), a.out); err == nil && v != "" {
		upd.Title = v
	}
	if v, err := getSimpleText(a.reader, "Description (empty keeps current)", a.out); err == nil && v != "" {
		upd.Description = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Department [%s]", doc.Department), a.out); err == nil && v != "" {
		upd.Department = v
	}

	if upd.Title == "" && upd.Description == "" && upd.Department == "" {
		fmt.Fprintln(a.out, "Nothing to change.")
		return
	}

	if _, err := a.api.UpdateDocument(ctx, id, upd); err != nil {
		fmt.Fprintln(a.out, "Updating document failed:", messageFor(err))
		return
	}
	fmt.Fprintf(a.out, "Document %d updated.\n", id)
}

// versionStatus handles "version <version-id>": shows the processing state
// of one uploaded revision.
func (a *App) versionStatus(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: version <version-id>")
		return
	}

	v, err := a.api.VersionStatus(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching version failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Version %d: %s, %d chunk(s)\n", v.VersionNumber, v.ProcessingStatus, v.TotalChunks)
	if v.ErrorMessage != "" {
		fmt.Fprintf(a.out, "Error: %s\n", v.ErrorMessage)
	}
}

// newDocumentVersion handles "newversion <id> <file>".
func (a *App) newDocumentVersion(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok || len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: newversion <id> <file>")
		return
	}

	path := args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Reading file failed:", err)
		return
	}

	result, err := a.api.NewDocumentVersion(ctx, id, filepath.Base(path), data)
	if err != nil {
		fmt.Fprintln(a.out, "Pushing new version failed:", messageFor(err))
		return
	}
	fmt.Fprintf(a.out, "Version %d uploaded (%s)\n",
		result.Version.VersionNumber, result.Version.ProcessingStatus)
}

// deleteDocument handles "delete <id>".
func (a *App) deleteDocument(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}

	confirm, _ := getSimpleText(a.reader, fmt.Sprintf("Delete document %d? (y/N)", id), a.out)
	if confirm != "y" && confirm != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}

	if err := a.api.DeleteDocument(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Deleting document failed:", messageFor(err))
		return
	}
	fmt.Fprintf(a.out, "Document %d deleted.\n", id)
}

// moderateDocument handles "approve <id>" and "reject <id>".
func (a *App) moderateDocument(ctx context.Context, args []string, action string) {
	if !a.session.HasRole(models.RoleAdmin) {
		fmt.Fprintln(a.out, "Moderation requires the ADMIN role.")
		return
	}

	id, ok := parseID(args)
	if !ok {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", action)
		return
	}

	if err := a.api.ApproveDocument(ctx, id, action); err != nil {
		fmt.Fprintf(a.out, "Could not %s document: %s\n", action, messageFor(err))
		return
	}
	fmt.Fprintf(a.out, "Document %d %sd.\n", id, action)
}
