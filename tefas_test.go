package finasist

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func fundServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("fonkod") == "" {
			http.Error(w, "missing fonkod", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFundLatestPicksNewest(t *testing.T) {
	// rows deliberately out of order, the newest TARIH must win
	srv := fundServer(t, `{"draw":0,"recordsTotal":3,"data":[
		{"TARIH":"1755205200000","FONKODU":"AFA","FIYAT":4.20},
		{"TARIH":"1755378000000","FONKODU":"AFA","FIYAT":4.35},
		{"TARIH":"1755291600000","FONKODU":"AFA","FIYAT":4.28}
	]}`)
	r := &MarketResolver{FundURL: srv.URL, Client: srv.Client()}

	got, err := r.fundLatest("AFA")
	if err != nil {
		t.Fatalf("fundLatest() error = %v", err)
	}
	if got != 4.35 {
		t.Errorf("fundLatest() = %v, want the newest close 4.35", got)
	}
}

func TestFundLatestEmptyWindow(t *testing.T) {
	srv := fundServer(t, `{"draw":0,"recordsTotal":0,"data":[]}`)
	r := &MarketResolver{FundURL: srv.URL, Client: srv.Client()}

	if _, err := r.fundLatest("AFA"); err == nil {
		t.Error("fundLatest() accepted an empty window")
	}
}

func TestFundLatestZeroPrice(t *testing.T) {
	srv := fundServer(t, `{"draw":0,"recordsTotal":1,"data":[
		{"TARIH":"1755205200000","FONKODU":"AFA","FIYAT":0}
	]}`)
	r := &MarketResolver{FundURL: srv.URL, Client: srv.Client()}

	if _, err := r.fundLatest("AFA"); err == nil {
		t.Error("fundLatest() accepted a zero price")
	}
}

func TestResolveFund(t *testing.T) {
	srv := fundServer(t, `{"draw":0,"recordsTotal":1,"data":[
		{"TARIH":"1755205200000","FONKODU":"AFA","FIYAT":4.332177}
	]}`)
	r := &MarketResolver{FundURL: srv.URL, Client: srv.Client()}

	got, err := r.Resolve(Fund, "AFA")
	if err != nil {
		t.Fatalf("Resolve(fund) error = %v", err)
	}
	if got.Currency() != "TRY" {
		t.Errorf("Resolve(fund) currency = %q, want TRY", got.Currency())
	}
	if got.Decimal().InexactFloat64() != 4.332177 {
		t.Errorf("Resolve(fund) = %s, want 4.332177", got)
	}
}
