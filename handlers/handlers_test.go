package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-attackboard/config"
	"go-attackboard/summarization"
	"go-attackboard/types"
	"go-attackboard/views"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testDashboard() *views.Dashboard {
	records := []types.AttackRecord{
		{Date: "2016-06-01", City: "Mogadishu", TargetType: "Business", WeaponType: "Explosives", WeaponSubtype: "Vehicle", Casualties: types.IntPtr(35)},
		{Date: "2016-06-02", City: "Afgooye", TargetType: "Military", WeaponType: "Firearms", Casualties: types.IntPtr(3)},
		{Date: "2016-06-03", City: "Marka", TargetType: "Police", WeaponType: "Firearms"},
	}
	return views.Build(records, views.Options{Title: "Test", PageSize: 2})
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func briefer(t *testing.T, status int, content string) *summarization.Briefer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"
	return summarization.NewBrieferWithClient(openai.NewClientWithConfig(cfg),
		config.BriefingConfig{Model: "gpt-4o-mini", MaxTokens: 50, Timeout: time.Second}, zap.NewNop())
}

func TestQueryRecords_DefaultPage(t *testing.T) {
	c, rec := newContext("/api/attackboard/records")
	QueryRecords(c, testDashboard())

	require.Equal(t, http.StatusOK, rec.Code)
	var page views.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, 2, page.PageCount)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, "Mogadishu", page.Rows[0].City)
}

func TestQueryRecords_FilterAndSort(t *testing.T) {
	c, rec := newContext("/api/attackboard/records?filter[casualties]=%3E0&sort=casualties:asc")
	QueryRecords(c, testDashboard())

	require.Equal(t, http.StatusOK, rec.Code)
	var page views.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "Afgooye", page.Rows[0].City)
	assert.Equal(t, 2, page.FilteredRows)
	assert.Equal(t, 3, page.TotalRows)
}

func TestQueryRecords_PastLastPage(t *testing.T) {
	c, rec := newContext("/api/attackboard/records?page=7")
	QueryRecords(c, testDashboard())

	require.Equal(t, http.StatusOK, rec.Code)
	var page views.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Rows)
	assert.Equal(t, 3, page.FilteredRows)

	for _, target := range []string{
		"/api/attackboard/records?page=1844674407370955161",
		"/api/attackboard/records?page=9223372036854775807&page_size=9223372036854775807",
	} {
		c, rec = newContext(target)
		QueryRecords(c, testDashboard())

		require.Equal(t, http.StatusOK, rec.Code, target)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Empty(t, page.Rows, target)
		assert.GreaterOrEqual(t, page.PageCount, 1, target)
	}
}

func TestQueryRecords_BadInput(t *testing.T) {
	for _, target := range []string{
		"/api/attackboard/records?page=-1",
		"/api/attackboard/records?page_size=x",
		"/api/attackboard/records?filter[nope]=1",
		"/api/attackboard/records?sort=nope:desc",
	} {
		c, rec := newContext(target)
		QueryRecords(c, testDashboard())
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"error"`, target)
	}
}

func TestGetBriefing(t *testing.T) {
	c, rec := newContext("/api/attackboard/briefing")
	GetBriefing(c, testDashboard(), briefer(t, http.StatusOK, "Vehicle bombs caused most casualties."))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"briefing":"Vehicle bombs caused most casualties."}`, rec.Body.String())
}

func TestGetBriefing_UpstreamError(t *testing.T) {
	c, rec := newContext("/api/attackboard/briefing")
	GetBriefing(c, testDashboard(), briefer(t, http.StatusInternalServerError, ""))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate briefing")
}

func TestGetBriefing_Disabled(t *testing.T) {
	c, rec := newContext("/api/attackboard/briefing")
	GetBriefing(c, testDashboard(), nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetBreakdowns(t *testing.T) {
	c, rec := newContext("/api/attackboard/breakdowns")
	GetBreakdowns(c, testDashboard())

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		TargetType    []types.CategoryBreakdown `json:"targetType"`
		WeaponSubtype []types.CategoryBreakdown `json:"weaponSubtype"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.TargetType, 3)
	require.Len(t, out.WeaponSubtype, 2)
	assert.Equal(t, "Unknown", out.WeaponSubtype[1].Category)
	assert.Equal(t, 2, out.WeaponSubtype[1].Occurrences)
	assert.Equal(t, 3, out.WeaponSubtype[1].Casualties)
}
