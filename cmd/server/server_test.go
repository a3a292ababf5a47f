package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/issue9/assert"

	"github.com/teatak/fenci/config"
	"github.com/teatak/fenci/dictionary"
	"github.com/teatak/fenci/keywords"
	"github.com/teatak/fenci/segmenter"
	"github.com/teatak/fenci/store"
)

func newTestServer(t *testing.T, accessLog string) (*server, *store.Store) {
	t.Helper()
	st, err := store.Open("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	var w io.Writer = io.Discard
	if accessLog != "" {
		cfg.Server.AccessLog = accessLog
		f, err := os.OpenFile(accessLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { f.Close() })
		w = f
	}
	srv := newServer(cfg, st, w)
	if err := srv.reload(); err != nil {
		t.Fatal(err)
	}
	return srv, st
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestServer_Segment(t *testing.T) {
	a := assert.New(t)
	srv, _ := newTestServer(t, "")
	h := srv.routes()

	rec := do(t, h, http.MethodPost, "/segment", SegRequest{Text: "王伟和李强都是程序员"})
	a.Equal(rec.Code, http.StatusOK)
	var words []string
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &words))
	a.Equal(words, []string{"王伟", "和", "李强", "都", "是", "程序员"})

	rec = do(t, h, http.MethodPost, "/segment", SegRequest{Text: "南京市长江大桥", Function: "tokenize", Mode: "default", Search: true})
	a.Equal(rec.Code, http.StatusOK)
	var tokens []segmenter.Token
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &tokens))
	a.Equal(len(tokens), 6)
	a.Equal(tokens[2], segmenter.Token{Word: "南京市", Start: 0, End: 3})

	rec = do(t, h, http.MethodPost, "/segment", SegRequest{Text: "北京", Function: "tag", Mode: "all"})
	a.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodPost, "/segment", SegRequest{Text: "北京", Mode: "crf"})
	a.Equal(rec.Code, http.StatusBadRequest)

	rec = do(t, h, http.MethodGet, "/segment", nil)
	a.Equal(rec.Code, http.StatusMethodNotAllowed)
}

func TestServer_Keywords(t *testing.T) {
	a := assert.New(t)
	srv, _ := newTestServer(t, "")
	h := srv.routes()

	text := "今天天气很好，我们去公园散步。公园里有很多人在散步，天气真好。"
	rec := do(t, h, http.MethodPost, "/keywords", KeywordRequest{Text: text, TopK: 2})
	a.Equal(rec.Code, http.StatusOK)
	var kws []keywords.Keyword
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &kws))
	a.Equal(len(kws), 2)
	a.Equal(kws[0].Word, "散步")

	rec = do(t, h, http.MethodPost, "/keywords", KeywordRequest{Text: text, Method: "textrank", TopK: 3})
	a.Equal(rec.Code, http.StatusOK)
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &kws))
	a.Equal(len(kws), 3)
	a.Equal(kws[2].Word, "很多")
}

func TestServer_Feedback(t *testing.T) {
	a := assert.New(t)
	srv, st := newTestServer(t, "")
	h := srv.routes()

	rec := do(t, h, http.MethodGet, "/suggest?word="+url.QueryEscape("中出"), nil)
	a.Equal(rec.Code, http.StatusOK)
	a.True(strings.Contains(rec.Body.String(), `"freq":348`))

	rec = do(t, h, http.MethodPost, "/feedback?"+url.Values{"word": {"中出"}, "tag": {"v"}}.Encode(), nil)
	a.Equal(rec.Code, http.StatusOK)
	var resp FeedbackResponse
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &resp))
	a.Equal(resp.Added, []dictionary.Entry{{Word: "中出", Freq: 348, Tag: "v"}})

	rec = do(t, h, http.MethodPost, "/segment", SegRequest{Text: "我们中出了一个叛徒", Mode: "default"})
	a.Equal(rec.Code, http.StatusOK)
	var words []string
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &words))
	a.Equal(words, []string{"我们", "中出", "了", "一个", "叛徒"})

	// a split removes the word across the boundary
	rec = do(t, h, http.MethodPost, "/feedback?word="+url.QueryEscape("南京市 长江大桥"), nil)
	a.Equal(rec.Code, http.StatusOK)
	resp = FeedbackResponse{}
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &resp))
	a.Equal(resp.Removed, []string{"市长"})

	removed, err := st.Removed()
	a.NotError(err)
	a.Equal(removed, []string{"市长"})

	// the store survives a reload
	rec = do(t, h, http.MethodPost, "/reload", nil)
	a.Equal(rec.Code, http.StatusOK)
	e, _ := srv.engine().Dictionary().Lookup("中出")
	a.Equal(e, dictionary.Entry{Word: "中出", Freq: 348, Tag: "v"})
	a.False(srv.engine().Dictionary().Contains("市长"))

	rec = do(t, h, http.MethodDelete, "/feedback?word="+url.QueryEscape("中出"), nil)
	a.Equal(rec.Code, http.StatusOK)
	a.False(srv.engine().Dictionary().Contains("中出"))

	rec = do(t, h, http.MethodPost, "/reload?clear=1", nil)
	a.Equal(rec.Code, http.StatusOK)
	a.True(srv.engine().Dictionary().Contains("市长"))

	rec = do(t, h, http.MethodPost, "/feedback", nil)
	a.Equal(rec.Code, http.StatusBadRequest)
}

func TestServer_TriggerDiscovery(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "access.log")
	srv, st := newTestServer(t, path)
	h := srv.routes()

	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/segment", SegRequest{Text: "王伟说了"})
		a.Equal(rec.Code, http.StatusOK)
	}

	rec := do(t, h, http.MethodPost, "/trigger-discovery", nil)
	a.Equal(rec.Code, http.StatusOK)
	var resp FeedbackResponse
	a.NotError(json.Unmarshal(rec.Body.Bytes(), &resp))
	a.True(len(resp.Added) > 0)
	for _, e := range resp.Added {
		a.True(srv.engine().Dictionary().Contains(e.Word))
	}
	a.True(srv.engine().Dictionary().Contains("王伟说了"))

	entries, err := st.Entries()
	a.NotError(err)
	a.True(len(entries) > 0)

	info, err := os.Stat(path)
	a.NotError(err)
	a.Equal(info.Size(), int64(0))
}
