package archive

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdlbot/fdl/internal/media"
)

type fakeAPI struct {
	mu         sync.Mutex
	forwardID  int
	forwardErr error
	deleteErr  error
	forwarded  []tgbotapi.ForwardConfig
	deleted    []tgbotapi.DeleteMessageConfig
	files      map[string]tgbotapi.File
	fileErr    error
	fileHang   chan struct{}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fwd, ok := c.(tgbotapi.ForwardConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	if f.forwardErr != nil {
		return tgbotapi.Message{}, f.forwardErr
	}
	f.forwarded = append(f.forwarded, fwd)
	return tgbotapi.Message{
		MessageID: f.forwardID,
		Chat:      &tgbotapi.Chat{ID: fwd.ChatID},
		Document:  &tgbotapi.Document{FileID: "archived-file", FileUniqueID: "archived-unique"},
	}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	del, ok := c.(tgbotapi.DeleteMessageConfig)
	if !ok {
		return nil, errors.New("unexpected chattable")
	}
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, del)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFile(cfg tgbotapi.FileConfig) (tgbotapi.File, error) {
	f.mu.Lock()
	hang := f.fileHang
	f.mu.Unlock()
	if hang != nil {
		<-hang
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fileErr != nil {
		return tgbotapi.File{}, f.fileErr
	}
	file, ok := f.files[cfg.FileID]
	if !ok {
		return tgbotapi.File{}, &tgbotapi.Error{Code: http.StatusBadRequest, Message: "Bad Request: wrong file_id or the file is temporarily unavailable"}
	}
	return file, nil
}

type memCatalog struct {
	mu      sync.Mutex
	entries map[int64]Entry
	putErr  error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{entries: make(map[int64]Entry)}
}

func (c *memCatalog) Put(_ context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[e.MediaID] = e
	return nil
}

func (c *memCatalog) Get(_ context.Context, id int64) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (c *memCatalog) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func newTestRelay(api BotAPI, catalog Catalog, fileEndpoint string) *TelegramRelay {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTelegramRelay(log, api, catalog, nil, RelayConfig{
		ArchiveChatID: -1001,
		BotToken:      "token",
		FileEndpoint:  fileEndpoint,
		FetchTimeout:  time.Second,
		IdleTimeout:   time.Second,
	})
}

func TestArchiveForwardsAndCatalogs(t *testing.T) {
	api := &fakeAPI{forwardID: 42}
	catalog := newMemCatalog()
	relay := newTestRelay(api, catalog, "")

	id, err := relay.Archive(context.Background(), media.Inbound{
		Kind: media.KindVideo, ChatID: 555, MessageID: 9, FileID: "orig", FileName: "clip.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.Len(t, api.forwarded, 1)
	assert.Equal(t, int64(-1001), api.forwarded[0].ChatID)
	assert.Equal(t, int64(555), api.forwarded[0].FromChatID)
	assert.Equal(t, 9, api.forwarded[0].MessageID)

	entry := catalog.entries[42]
	assert.Equal(t, "archived-file", entry.FileID)
	assert.Equal(t, "archived-unique", entry.FileUniqueID)
	assert.Equal(t, "clip.mp4", entry.FileName)
	assert.Equal(t, "video/mp4", entry.Mime)
	assert.Equal(t, media.KindVideo, entry.Kind)
}

func TestArchiveForwardFailure(t *testing.T) {
	api := &fakeAPI{forwardErr: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot is not a member of the channel chat"}}
	catalog := newMemCatalog()
	relay := newTestRelay(api, catalog, "")

	_, err := relay.Archive(context.Background(), media.Inbound{Kind: media.KindVideo, ChatID: 1, MessageID: 2})
	require.Error(t, err)
	assert.Empty(t, catalog.entries)
}

func TestArchiveRequiresSourceMessage(t *testing.T) {
	relay := newTestRelay(&fakeAPI{forwardID: 1}, newMemCatalog(), "")
	_, err := relay.Archive(context.Background(), media.Inbound{Kind: media.KindVideo})
	assert.Error(t, err)
}

func TestArchiveCatalogFailureRemovesForward(t *testing.T) {
	api := &fakeAPI{forwardID: 77}
	catalog := newMemCatalog()
	catalog.putErr = errors.New("disk full")
	relay := newTestRelay(api, catalog, "")

	_, err := relay.Archive(context.Background(), media.Inbound{Kind: media.KindAudio, ChatID: 1, MessageID: 2})
	require.Error(t, err)
	require.Len(t, api.deleted, 1)
	assert.Equal(t, 77, api.deleted[0].MessageID)
	assert.Equal(t, int64(-1001), api.deleted[0].ChatID)
}

func TestFetchStreamsFile(t *testing.T) {
	payload := "not really an mp4"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/file/bottoken/videos/file_1.mp4" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, payload)
	}))
	defer srv.Close()

	api := &fakeAPI{files: map[string]tgbotapi.File{
		"archived-file": {FileID: "archived-file", FilePath: "videos/file_1.mp4"},
		"gone-file":     {FileID: "gone-file", FilePath: "videos/missing.mp4"},
	}}
	catalog := newMemCatalog()
	catalog.entries[42] = Entry{MediaID: 42, FileID: "archived-file", Mime: "video/mp4", FileName: "clip.mp4"}
	catalog.entries[43] = Entry{MediaID: 43, FileID: "gone-file", Mime: "video/mp4"}
	catalog.entries[44] = Entry{MediaID: 44, FileID: "purged-file", Mime: "video/mp4"}
	relay := newTestRelay(api, catalog, srv.URL+"/file/bot%s/%s")

	obj, err := relay.Fetch(context.Background(), 42)
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, payload, string(body))
	assert.Equal(t, "video/mp4", obj.ContentType)
	assert.Equal(t, "clip.mp4", obj.FileName)
	assert.Equal(t, int64(len(payload)), obj.Size)

	_, err = relay.Fetch(context.Background(), 43)
	assert.ErrorIs(t, err, ErrNotFound, "upstream 404")
	_, err = relay.Fetch(context.Background(), 44)
	assert.ErrorIs(t, err, ErrNotFound, "bot api refuses file id")
	_, err = relay.Fetch(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound, "unknown media id")
}

func TestFetchTooLarge(t *testing.T) {
	api := &fakeAPI{fileErr: &tgbotapi.Error{Code: http.StatusBadRequest, Message: "Bad Request: file is too big"}}
	catalog := newMemCatalog()
	catalog.entries[1] = Entry{MediaID: 1, FileID: "big"}
	relay := newTestRelay(api, catalog, "")

	_, err := relay.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFetchBoundsFileLookup(t *testing.T) {
	hang := make(chan struct{})
	defer close(hang)
	api := &fakeAPI{fileHang: hang}
	catalog := newMemCatalog()
	catalog.entries[1] = Entry{MediaID: 1, FileID: "f"}
	relay := newTestRelay(api, catalog, "")
	relay.cfg.FetchTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err := relay.Fetch(context.Background(), 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	relay.cfg.FetchTimeout = time.Hour
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = relay.Fetch(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchStalledUpstreamIsCut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "first chunk")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	api := &fakeAPI{files: map[string]tgbotapi.File{"f": {FileID: "f", FilePath: "x.bin"}}}
	catalog := newMemCatalog()
	catalog.entries[1] = Entry{MediaID: 1, FileID: "f"}
	relay := newTestRelay(api, catalog, srv.URL+"/file/bot%s/%s")
	relay.cfg.IdleTimeout = 100 * time.Millisecond

	obj, err := relay.Fetch(context.Background(), 1)
	require.NoError(t, err)
	defer obj.Body.Close()

	start := time.Now()
	_, err = io.ReadAll(obj.Body)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	catalog := newMemCatalog()
	catalog.entries[42] = Entry{MediaID: 42, FileID: "f"}
	relay := newTestRelay(api, catalog, "")

	require.NoError(t, relay.Delete(context.Background(), 42))
	require.Len(t, api.deleted, 1)
	assert.Equal(t, 42, api.deleted[0].MessageID)
	_, err := catalog.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, relay.Delete(context.Background(), 42), ErrNotFound)
}

func TestDeleteToleratesMissingMessage(t *testing.T) {
	api := &fakeAPI{deleteErr: &tgbotapi.Error{Code: http.StatusBadRequest, Message: "Bad Request: message to delete not found"}}
	catalog := newMemCatalog()
	catalog.entries[5] = Entry{MediaID: 5, FileID: "f"}
	relay := newTestRelay(api, catalog, "")

	require.NoError(t, relay.Delete(context.Background(), 5))
	assert.Empty(t, catalog.entries)
}

func TestFileEndpointFor(t *testing.T) {
	assert.Equal(t, tgbotapi.FileEndpoint, FileEndpointFor(""))
	assert.Equal(t, tgbotapi.FileEndpoint, FileEndpointFor(tgbotapi.APIEndpoint))
	assert.Equal(t, "http://localhost:8081/file/bot%s/%s", FileEndpointFor("http://localhost:8081/bot%s/%s"))
	assert.Equal(t, tgbotapi.FileEndpoint, FileEndpointFor("http://weird"))
}
