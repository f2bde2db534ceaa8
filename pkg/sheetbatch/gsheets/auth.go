package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/net/proxy"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ServiceAccount returns a client option authenticating with a service
// account key. Token and API requests go through httpClient; nil uses
// http.DefaultClient.
func ServiceAccount(ctx context.Context, keyJSON []byte, httpClient *http.Client) (option.ClientOption, error) {
	conf, err := google.JWTConfigFromJSON(keyJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	return option.WithHTTPClient(conf.Client(ctx)), nil
}

// ServiceAccountFile is ServiceAccount with the key read from path.
func ServiceAccountFile(ctx context.Context, path string, httpClient *http.Client) (option.ClientOption, error) {
	keyJSON, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ServiceAccount(ctx, keyJSON, httpClient)
}

// DefaultCredentials returns a client option using the application
// default credentials, with token and API requests going through
// httpClient.
func DefaultCredentials(ctx context.Context, httpClient *http.Client) (option.ClientOption, error) {
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	client, err := google.DefaultClient(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("find default credentials: %w", err)
	}
	return option.WithHTTPClient(client), nil
}

// Connect creates a client authenticated with the service account key
// at credentialsFile, or the application default credentials when it is
// empty. An empty proxyAddr falls back to ProxyFromEnv.
func Connect(ctx context.Context, logger *slog.Logger, credentialsFile, proxyAddr string) (*Client, error) {
	if proxyAddr == "" {
		proxyAddr = ProxyFromEnv()
	}
	httpClient, err := HTTPClient(proxyAddr)
	if err != nil {
		return nil, err
	}

	var auth option.ClientOption
	if credentialsFile != "" {
		auth, err = ServiceAccountFile(ctx, credentialsFile, httpClient)
	} else {
		auth, err = DefaultCredentials(ctx, httpClient)
	}
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("sheets client", "credentials", credentialsFile, "proxy", proxyAddr != "")
	}
	return New(ctx, logger, auth)
}

// ProxyFromEnv returns the first proxy address set in the environment.
func ProxyFromEnv() string {
	for _, key := range []string{
		"ALL_PROXY",
		"all_proxy",
		"HTTPS_PROXY",
		"https_proxy",
		"SOCKS_PROXY",
		"socks_proxy",
	} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// HTTPClient returns a client that reaches the network through
// proxyAddr. http and https proxies are used as forward proxies, socks
// proxies as dialers. An empty address connects directly.
func HTTPClient(proxyAddr string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyAddr == "" {
		return &http.Client{Transport: transport}, nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return nil, fmt.Errorf("parse proxy address: %w", err)
	}
	if u.Scheme == "socks" {
		u.Scheme = "socks5"
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	default:
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, err
		}
		contextDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, errors.New("proxy dialer does not support contexts")
		}
		transport.Proxy = nil
		transport.DialContext = contextDialer.DialContext
	}
	return &http.Client{Transport: transport}, nil
}
