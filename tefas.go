package finasist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// This file contains functions to access the TEFAS fund price API.

const tefasHistoryURL = "https://www.tefas.gov.tr/api/DB/BindHistoryInfo"

// tefasWindowDays is the trailing window queried for a fund quote. Funds
// publish one close per business day, so a week is enough to always catch
// the most recent one across weekends and holidays.
const tefasWindowDays = 7

// fundLatest returns the most recent close for a TEFAS fund code within the
// trailing window.
func (r *MarketResolver) fundLatest(code string) (float64, error) {
	// {
	// 	"draw": 0,
	// 	"recordsTotal": 5,
	// 	"data": [
	// 		{
	// 			"TARIH": "1755205200000",
	// 			"FONKODU": "TCD",
	// 			"FONUNVAN": "...",
	// 			"FIYAT": 4.332177,
	// 			...
	// 		},
	addr := r.FundURL
	if addr == "" {
		addr = tefasHistoryURL
	}

	end := Today()
	start := end.Add(-tefasWindowDays)
	form := url.Values{
		"fontip":   {"YAT"},
		"fonkod":   {code},
		"bastarih": {start.Format("02.01.2006")},
		"bittarih": {end.Format("02.01.2006")},
	}

	// The daily cache keys on method+URL only, and the fund code travels in
	// the form body, so fund lookups must bypass it.
	client := r.Client
	if client == nil {
		client = bounded()
	}
	resp, err := client.PostForm(addr, form)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("cannot http POST %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return 0, err
	}

	// that's the payload
	var content struct {
		Data []struct {
			Date  json.Number `json:"TARIH"` // milliseconds since epoch
			Code  string      `json:"FONKODU"`
			Price float64     `json:"FIYAT"`
		} `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &content); err != nil {
		return 0, err
	}
	if len(content.Data) == 0 {
		return 0, fmt.Errorf("no prices for fund %q in the last %d days", code, tefasWindowDays)
	}

	// The API is not explicit about ordering, keep the newest row.
	latest := content.Data[0]
	latestDate, _ := latest.Date.Int64()
	for _, row := range content.Data[1:] {
		d, _ := row.Date.Int64()
		if d > latestDate {
			latest, latestDate = row, d
		}
	}
	if latest.Price <= 0 {
		return 0, fmt.Errorf("empty price for fund %q", code)
	}
	return latest.Price, nil
}
