// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/dioloto"
	"github.com/zintix-labs/dioloto/configs"
	"github.com/zintix-labs/dioloto/dto"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/server/httperr"
	"github.com/zintix-labs/dioloto/server/netsvr"
	"github.com/zintix-labs/dioloto/server/svrcfg"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	lab, err := dioloto.NewAuto(core.Default(), dioloto.Configs(configs.FS))
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	sCfg := &svrcfg.SvrCfg{Lab: lab, MaxRounds: 50_000, MaxWorkers: 4, MaxPlayers: 200, SimTimeout: 20 * time.Second}
	svr := netsvr.NewChiServerDefault()
	if err := RegisterRoutes(svr, sCfg); err != nil {
		t.Fatalf("register: %v", err)
	}
	ts := httptest.NewServer(svr)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("get %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func postJSON(t *testing.T, url, body string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("post %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestIndexAndHealth(t *testing.T) {
	ts := newTestServer(t)
	var idx struct {
		Service string   `json:"service"`
		Routes  []string `json:"routes"`
	}
	getJSON(t, ts.URL+"/", http.StatusOK, &idx)
	if idx.Service != "dioloto" || len(idx.Routes) != len(Routes) {
		t.Fatalf("unexpected index %+v", idx)
	}
	getJSON(t, ts.URL+"/healthz", http.StatusNoContent, nil)
}

func TestGames(t *testing.T) {
	ts := newTestServer(t)
	var res dto.GameList
	getJSON(t, ts.URL+"/v1/games", http.StatusOK, &res)
	found := false
	for _, g := range res.Games {
		if g.Code == "togo9" {
			found = g.DoubleChance
		}
	}
	if !found {
		t.Fatalf("togo9 with double chance not listed: %+v", res.Games)
	}
}

func TestFormulas(t *testing.T) {
	ts := newTestServer(t)
	var res struct {
		Formulas   []string `json:"formulas"`
		MinNumbers int      `json:"min_numbers"`
		MaxNumbers int      `json:"max_numbers"`
	}
	getJSON(t, ts.URL+"/v1/formulas?game=togo9&bet_type=NAP&balls=4", http.StatusOK, &res)
	if strings.Join(res.Formulas, ",") != "NAP3,NAP4,NAP5,NAP3DoubleChance,NAP4DoubleChance,NAP5DoubleChance" {
		t.Fatalf("unexpected formulas %v", res.Formulas)
	}
	if res.MinNumbers != 4 || res.MaxNumbers != 4 {
		t.Fatalf("unexpected bounds %+v", res)
	}
	getJSON(t, ts.URL+"/v1/formulas?game=atlantis&bet_type=NAP", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/v1/formulas?game=niger15&bet_type=Annagrammesimple", http.StatusBadRequest, nil)
}

func TestQuoteGET(t *testing.T) {
	ts := newTestServer(t)
	var res dto.QuoteResult
	getJSON(t, ts.URL+"/v1/quote?game=togo9&bet_type=Twosurs&formula=Turbo2DoubleChance&numbers=5-17&stake=50", http.StatusOK, &res)
	if res.Quote.Gains != "90000.00 (Win) / 60000.00 (Machine)" || !res.Quote.Valid {
		t.Fatalf("unexpected quote %+v", res.Quote)
	}
	if res.Quote.Display != "90000.00 (Win) / 60000.00 (Machine) XOF" {
		t.Fatalf("unexpected display %q", res.Quote.Display)
	}
	if res.Ticket == nil || res.Ticket.Formula != "Turbo2DoubleChance" {
		t.Fatalf("expected ticket payload, got %+v", res.Ticket)
	}
}

func TestQuotePOST(t *testing.T) {
	ts := newTestServer(t)
	var res dto.QuoteResult
	body := `{"game":"ghana11","bet_type":"NAP","formula":"NAP3","balls":5,"numbers":[1,2,3,4,5],"prises":"2"}`
	postJSON(t, ts.URL+"/v1/quote", body, http.StatusOK, &res)
	if res.Quote.Gains != "60000.00" || !res.Quote.Valid {
		t.Fatalf("unexpected quote %+v", res.Quote)
	}
	if res.Quote.Charged.String() != "200" {
		t.Fatalf("charged %s, want 200", res.Quote.Charged)
	}

	// 不完整的投注單仍是 200，valid=false
	body = `{"game":"ghana11","bet_type":"Twosurs","formula":"Directe","numbers":[5],"stake":"10"}`
	postJSON(t, ts.URL+"/v1/quote", body, http.StatusOK, &res)
	if res.Quote.Valid || res.Quote.Gains != "" || res.Ticket != nil {
		t.Fatalf("incomplete coupon must not be valid: %+v", res.Quote)
	}

	var e httperr.Body
	postJSON(t, ts.URL+"/v1/quote", `{"game":"ghana11","bet_type":"Keno","formula":"Directe"}`, http.StatusBadRequest, &e)
	if !strings.Contains(e.Error, "unknown bet type") {
		t.Fatalf("unexpected error body %+v", e)
	}
}

func TestAutoPick(t *testing.T) {
	ts := newTestServer(t)
	var a, b dto.AutoPickResult
	getJSON(t, ts.URL+"/v1/autopick?bet_type=Permutations&balls=6&seed=11", http.StatusOK, &a)
	getJSON(t, ts.URL+"/v1/autopick?bet_type=Permutations&balls=6&seed=11", http.StatusOK, &b)
	if len(a.Numbers) != 6 || a.Joined != b.Joined || a.Seed != 11 {
		t.Fatalf("unexpected autopick %+v / %+v", a, b)
	}
	getJSON(t, ts.URL+"/v1/autopick?bet_type=NAP&balls=500", http.StatusBadRequest, nil)
}

func TestSim(t *testing.T) {
	ts := newTestServer(t)
	var res dto.SimResult
	body := `{"game":"togo9","bet_type":"FirstouonBK","formula":"Directe","numbers":[7],"stake":"10","rounds":5000,"workers":2,"seed":5}`
	postJSON(t, ts.URL+"/v1/sim", body, http.StatusOK, &res)
	if res.Seed != 5 || res.Stats == nil || res.Stats.Summary.Rounds != 10000 {
		t.Fatalf("unexpected sim result %+v", res)
	}
	if res.Stats.Theory == nil || res.Stats.Theory.RTP <= 0 {
		t.Fatalf("missing theory %+v", res.Stats.Theory)
	}

	var players dto.SimResult
	body = `{"game":"togo9","bet_type":"FirstouonBK","formula":"Directe","numbers":[7],"stake":"10","rounds":100,"workers":2,"seed":5,"players":20,"init_bets":10}`
	postJSON(t, ts.URL+"/v1/sim", body, http.StatusOK, &players)
	if players.Estimator == nil || players.Estimator.Players != 20 {
		t.Fatalf("unexpected player sim %+v", players.Estimator)
	}

	postJSON(t, ts.URL+"/v1/sim", `{"game":"togo9","bet_type":"FirstouonBK","formula":"Directe","numbers":[7],"stake":"10","rounds":60000}`, http.StatusBadRequest, nil)
	postJSON(t, ts.URL+"/v1/sim", `{"game":"togo9","bet_type":"FirstouonBK","formula":"Directe","numbers":[7],"stake":"5","rounds":10}`, http.StatusBadRequest, nil)
}
