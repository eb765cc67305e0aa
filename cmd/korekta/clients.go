package main

import (
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/korekta"
	"github.com/fwojciec/korekta/anthropic"
	"github.com/fwojciec/korekta/deepseek"
	"github.com/fwojciec/korekta/gemini"
	"github.com/fwojciec/korekta/openai"
)

const dialTimeout = 8 * time.Second

// newHTTPClient returns the client shared by every backend. Overall
// deadlines are set per provider by the clients themselves.
func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = dialTimeout
	return &http.Client{Transport: transport}
}

// newClients constructs one client per provider.
func newClients(hc *http.Client) map[korekta.ProviderID]korekta.Client {
	return map[korekta.ProviderID]korekta.Client{
		korekta.OpenAI:    openai.New(openai.WithHTTPClient(hc)),
		korekta.Anthropic: anthropic.New(anthropic.WithHTTPClient(hc)),
		korekta.Gemini:    gemini.New(gemini.WithHTTPClient(hc)),
		korekta.DeepSeek:  deepseek.New(deepseek.WithHTTPClient(hc)),
	}
}
