package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
)

type navigation struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type sessionInfo struct {
	Authenticated bool         `json:"authenticated"`
	Role          string       `json:"role"`
	Elevated      bool         `json:"elevated"`
	Navigation    []navigation `json:"navigation"`
}

// Signs in to a running console and checks that every menu entry opens and
// nothing outside the menu does.
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s <username> <password> [console-addr]", os.Args[0])
	}

	username, password := os.Args[1], os.Args[2]
	consoleAddr := "http://localhost:8080"
	if len(os.Args) > 3 {
		consoleAddr = "http://localhost" + os.Args[3]
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.PostForm(consoleAddr+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		log.Fatalf("Login request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		fmt.Printf("❌ Sign-in REJECTED\n")
		fmt.Printf("Status: %d\n", resp.StatusCode)
		fmt.Printf("Body: %s\n", strings.TrimSpace(string(body)))
		os.Exit(1)
	}
	fmt.Println("✅ Signed in")

	session := fetchSession(client, consoleAddr)
	fmt.Printf("\n📋 Session:\n")
	fmt.Printf("   Role: %s\n", session.Role)
	fmt.Printf("   Elevated: %t\n", session.Elevated)

	mounted := make(map[string]bool)
	failed := false
	fmt.Println("\nMenu entries:")
	for _, item := range session.Navigation {
		mounted[item.Path] = true
		status := get(client, consoleAddr+item.Path)
		mark := "✅"
		if status != http.StatusOK {
			mark = "❌"
			failed = true
		}
		fmt.Printf("   %s %-12s %s (%d)\n", mark, item.Label, item.Path, status)
	}

	fmt.Println("\nHidden entries:")
	for _, path := range []string{"/", "/birthdays", "/org", "/hr", "/audit", "/settings", "/users"} {
		if mounted[path] {
			continue
		}
		status := get(client, consoleAddr+path)
		mark := "✅"
		if status != http.StatusNotFound {
			mark = "❌"
			failed = true
		}
		fmt.Printf("   %s %s (%d)\n", mark, path, status)
	}

	if failed {
		os.Exit(1)
	}
}

func fetchSession(client *http.Client, addr string) sessionInfo {
	resp, err := client.Get(addr + "/session")
	if err != nil {
		log.Fatalf("Session request failed: %v", err)
	}
	defer resp.Body.Close()

	var info sessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		log.Fatalf("Failed to decode session: %v", err)
	}
	if !info.Authenticated {
		log.Fatalf("Session is not authenticated after sign-in")
	}
	return info
}

func get(client *http.Client, target string) int {
	resp, err := client.Get(target)
	if err != nil {
		log.Fatalf("Request to %s failed: %v", target, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode
}
