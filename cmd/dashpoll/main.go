// dashpoll polls the dashboard endpoints the way the frontend does.
// Useful as a deployment smoke check.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	base := flag.String("base", "http://localhost:8000", "backend base URL")
	device := flag.String("device", "", "device ID (default: the backend's default device)")
	interval := flag.Duration("interval", 5*time.Second, "poll interval")
	once := flag.Bool("once", false, "poll a single time and exit")
	flag.Parse()

	client := resty.New().SetBaseURL(*base)

	for {
		poll(client, *device)
		if *once {
			return
		}
		time.Sleep(*interval)
	}
}

func poll(client *resty.Client, device string) {
	for _, path := range []string{"/api/realtime", "/api/daily"} {
		req := client.R()
		if device != "" {
			req.SetQueryParam("device", device)
		}
		resp, err := req.Get(path)
		if err != nil {
			log.Printf("GET %s failed: %v", path, err)
			continue
		}
		log.Printf("GET %s -> %s %s", path, resp.Status(), resp.Body())
	}
}
