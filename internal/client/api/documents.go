package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hhsksonu/kpcli/internal/client/models"
)

// DocumentFilter narrows document listings. Zero values mean "no filter".
type DocumentFilter struct {
	Status     models.DocumentStatus
	Owner      string
	Department string
	Tags       []string
	Search     string
	Page       int
}

func (f DocumentFilter) values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Owner != "" {
		v.Set("owner", f.Owner)
	}
	if f.Department != "" {
		v.Set("department", f.Department)
	}
	if len(f.Tags) > 0 {
		v.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

// DocumentUpload describes a new document and its first file version.
type DocumentUpload struct {
	Title       string
	Description string
	Department  string
	Tags        []string
	FileName    string
	FileData    []byte
}

// UploadResult is the response to a successful upload or new-version push.
type UploadResult struct {
	Message  string                 `json:"message"`
	Document models.Document        `json:"document"`
	Version  models.DocumentVersion `json:"version"`
}

// multipartBody assembles a multipart form up front so the dispatch loop can
// replay the upload after a token refresh.
func multipartBody(fields map[string]string, fileField, fileName string, fileData []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(fileData); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// UploadDocument creates a document with its first version.
func (c *Client) UploadDocument(ctx context.Context, up DocumentUpload) (*UploadResult, error) {
	fields := map[string]string{
		"title":       up.Title,
		"description": up.Description,
		"department":  up.Department,
	}
	if len(up.Tags) > 0 {
		fields["tags"] = strings.Join(up.Tags, ",")
	}

	body, contentType, err := multipartBody(fields, "file", up.FileName, up.FileData)
	if err != nil {
		return nil, err
	}

	cl := call{
		method:      http.MethodPost,
		path:        "/documents/upload/",
		body:        body,
		contentType: contentType,
	}
	var result UploadResult
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListDocuments returns a filtered page of documents.
func (c *Client) ListDocuments(ctx context.Context, filter DocumentFilter) (*models.Page[models.Document], error) {
	cl := call{method: http.MethodGet, path: "/documents/", query: filter.values()}
	var result models.Page[models.Document]
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDocument fetches a document with all its versions.
func (c *Client) GetDocument(ctx context.Context, id int64) (*models.DocumentDetail, error) {
	cl := call{method: http.MethodGet, path: fmt.Sprintf("/documents/%d/", id)}
	var doc models.DocumentDetail
	if err := c.do(ctx, cl, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument edits document metadata.
func (c *Client) UpdateDocument(ctx context.Context, id int64, upd models.DocumentUpdate) (*models.Document, error) {
	cl, err := jsonCall(http.MethodPut, fmt.Sprintf("/documents/%d/", id), upd)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := c.do(ctx, cl, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document and its versions.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	cl := call{method: http.MethodDelete, path: fmt.Sprintf("/documents/%d/", id)}
	return c.do(ctx, cl, nil)
}

// ApproveDocument approves or rejects a document; action is "approve" or
// "reject".
func (c *Client) ApproveDocument(ctx context.Context, id int64, action string) error {
	cl, err := jsonCall(http.MethodPost, fmt.Sprintf("/documents/%d/approve/", id), map[string]string{"action": action})
	if err != nil {
		return err
	}
	return c.do(ctx, cl, nil)
}

// NewDocumentVersion uploads a replacement file for an existing document.
func (c *Client) NewDocumentVersion(ctx context.Context, id int64, fileName string, fileData []byte) (*UploadResult, error) {
	body, contentType, err := multipartBody(nil, "file", fileName, fileData)
	if err != nil {
		return nil, err
	}
	cl := call{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/documents/%d/new-version/", id),
		body:        body,
		contentType: contentType,
	}
	var result UploadResult
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VersionStatus reports the processing state of one uploaded version.
func (c *Client) VersionStatus(ctx context.Context, versionID int64) (*models.DocumentVersion, error) {
	cl := call{method: http.MethodGet, path: fmt.Sprintf("/documents/versions/%d/status/", versionID)}
	var v models.DocumentVersion
	if err := c.do(ctx, cl, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
