package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mesai/identity"
)

// Scopes requested for every storage credential.
var storageScopes = []string{"Files.ReadWrite"}

// TokenSource supplies a fresh bearer credential for the file-storage API.
// identity.Provider satisfies it.
type TokenSource interface {
	AcquireCredential(ctx context.Context, scopes []string) (*identity.Credential, error)
}

// RemoteStore mirrors the document to a remote file-storage API as one JSON
// file. Every operation first acquires a fresh credential (suspending until
// resolved or failing outright, no retry), then performs a single request:
// locate/read on load, one atomic full-content replace on save.
type RemoteStore struct {
	client   *http.Client
	tokens   TokenSource
	baseURL  string
	fileName string
	seed     Document

	// fileID caches the handle returned by locate/create. The handle is
	// stable for the lifetime of the remote file.
	fileID string
}

func NewRemoteStore(baseURL, fileName string, tokens TokenSource, seed Document) *RemoteStore {
	return &RemoteStore{
		client:   &http.Client{Timeout: 30 * time.Second},
		tokens:   tokens,
		baseURL:  baseURL,
		fileName: fileName,
		seed:     seed,
	}
}

// Load locates the document and reads its full content. A missing document
// is created from the seed content and the seed is returned.
func (s *RemoteStore) Load(ctx context.Context) (Document, error) {
	cred, err := s.tokens.AcquireCredential(ctx, storageScopes)
	if err != nil {
		return Document{}, fmt.Errorf("load document: %w", err)
	}

	id, found, err := s.locate(ctx, cred.Token)
	if err != nil {
		return Document{}, err
	}
	if !found {
		id, err = s.create(ctx, cred.Token, s.seed)
		if err != nil {
			return Document{}, err
		}
		s.fileID = id
		return s.seed.Clone(), nil
	}
	s.fileID = id
	return s.read(ctx, cred.Token, id)
}

// Save replaces the entire remote content with doc. A failed write is
// surfaced to the caller exactly once; nothing retries and nothing rolls
// the in-memory state back.
func (s *RemoteStore) Save(ctx context.Context, doc Document) error {
	cred, err := s.tokens.AcquireCredential(ctx, storageScopes)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	if s.fileID == "" {
		id, found, err := s.locate(ctx, cred.Token)
		if err != nil {
			return err
		}
		if !found {
			id, err = s.create(ctx, cred.Token, doc)
			if err != nil {
				return err
			}
			s.fileID = id
			return nil
		}
		s.fileID = id
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/files/%s/content", s.baseURL, s.fileID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("write document: storage API returned %s", resp.Status)
	}
	return nil
}

// locate resolves the document handle by file name.
func (s *RemoteStore) locate(ctx context.Context, token string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/files/%s", s.baseURL, url.PathEscape(s.fileName)), nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("locate document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("locate document: storage API returned %s", resp.Status)
	}

	var handle struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return "", false, fmt.Errorf("locate document: %w", err)
	}
	return handle.ID, true, nil
}

func (s *RemoteStore) read(ctx context.Context, token, id string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/files/%s/content", s.baseURL, id), nil)
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("read document: storage API returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	// Either array may be absent in an older or hand-edited file.
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func (s *RemoteStore) create(ctx context.Context, token string, initial Document) (string, error) {
	payload := struct {
		Name    string   `json:"name"`
		Content Document `json:"content"`
	}{Name: s.fileName, Content: initial}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/files", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create document: storage API returned %s", resp.Status)
	}

	var handle struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return handle.ID, nil
}
