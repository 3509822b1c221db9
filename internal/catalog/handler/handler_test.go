package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stone-price-service/internal/catalog/store"
	"stone-price-service/internal/config"
)

const testCatalogue = `loai_da,gia_cong,mo_ta,don_gia,usd_pc,usd_m2,usd_m3,usd_ton,year,H,W,L
GRANITE WHITE,FLAMED,paver,,,,120,,2023,8,15,15
GRANITE WHITE,FLAMED,paver,,,,130,,2023,8,20,20
BAZAN ĐEN,HONED,kerb,,,,95,,2022,10,30,60
`

func testConfig() config.Config {
	return config.Config{
		MaxUploadMB: 10,
		TopK:        10,
		PriceOffset: 87.5,
	}
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "latest_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogue), 0o644))
	return store.New(path)
}

func doMatch(t *testing.T, st *store.Store, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	Match(testConfig(), st, zerolog.Nop())(w, req)
	return w
}

func TestMatchExact(t *testing.T) {
	w := doMatch(t, testStore(t), url.Values{
		"stone_type": {"granite white"},
		"processing": {"flamed"},
		"height":     {"8"},
		"width":      {"15"},
		"length":     {"15"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var resp matchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Exact)
	assert.Equal(t, resp.MaxScore, resp.TopScore)
	assert.Equal(t, 3, resp.Total)
	assert.Nil(t, resp.Prediction, "точное совпадение не должно прогнозироваться")
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "GRANITE WHITE", resp.Matches[0].StoneType)
}

func TestMatchPrediction(t *testing.T) {
	w := doMatch(t, testStore(t), url.Values{
		"stone_type": {"GRANITE RED"},
		"processing": {"BUSH HAMMERED"},
		"height":     {"6"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Exact)
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, "statistical", resp.Prediction.Method)
	assert.Equal(t, 3, resp.Prediction.ValidPrices)
	assert.InDelta(t, 115.0, resp.Prediction.AvgPrice, 1e-9)
}

func TestMatchLimit(t *testing.T) {
	w := doMatch(t, testStore(t), url.Values{
		"stone_type": {"GRANITE WHITE"},
		"height":     {"8"},
		"limit":      {"1"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Matches, 1)
}

func TestMatchValidation(t *testing.T) {
	cases := []struct {
		name string
		form url.Values
	}{
		{"missing stone_type", url.Values{"height": {"8"}}},
		{"missing height", url.Values{"stone_type": {"GRANITE"}}},
		{"zero height", url.Values{"stone_type": {"GRANITE"}, "height": {"0"}}},
		{"garbage height", url.Values{"stone_type": {"GRANITE"}, "height": {"tall"}}},
	}
	st := testStore(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doMatch(t, st, tc.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestMatchStoreUnavailable(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "nope.csv"))
	w := doMatch(t, st, url.Values{
		"stone_type": {"GRANITE"},
		"height":     {"8"},
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMatchUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("loai_da,gia_cong,H,W,L,usd_m3\nBLUESTONE,TUMBLED,5,10,10,80\n"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("stone_type", "BLUESTONE"))
	require.NoError(t, mw.WriteField("processing", "TUMBLED"))
	require.NoError(t, mw.WriteField("height", "5"))
	require.NoError(t, mw.WriteField("width", "10"))
	require.NoError(t, mw.WriteField("length", "10"))
	require.NoError(t, mw.Close())

	// стор указывает в никуда: если бы обработчик не взял приложенный
	// файл, ответ был бы 503
	st := store.New(filepath.Join(t.TempDir(), "nope.csv"))

	req := httptest.NewRequest(http.MethodPost, "/match", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	Match(testConfig(), st, zerolog.Nop())(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp matchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Exact)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "BLUESTONE", resp.Matches[0].StoneType)
}
