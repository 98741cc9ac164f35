package sdk_test

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/beanbocchi/flowmeter/pkg/sdk"
)

func ExampleClient_Upload() {
	// Create client
	client := sdk.NewClient("http://localhost:8080/api/v1")

	// Prepare file content
	fileContent := bytes.NewBufferString("This is object content")

	// Upload object
	resp, err := client.Upload(sdk.UploadRequest{
		ObjectKey: "reports/2025/q2.bin",
		File:      fileContent,
		FileName:  "q2.bin",
	})
	if err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		return
	}

	fmt.Printf("Transfer %s: %s\n", resp.Transfer.ID, resp.Transfer.Status)
	fmt.Printf("Client-side hash: %s\n", resp.Hash)
}

func ExampleClient_Download() {
	// Create client
	client := sdk.NewClient("http://localhost:8080/api/v1")

	// Download object; the stream is metered from Content-Length
	reader, err := client.Download("reports/2025/q2.bin")
	if err != nil {
		fmt.Printf("Download failed: %v\n", err)
		return
	}
	defer reader.Close()

	// Watch progress from another goroutine while draining
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			fraction := reader.Fraction()
			if eta, ok := reader.ETA(); ok {
				fmt.Printf("%.0f%% done, about %s left\n", fraction*100, eta)
			}
			if fraction >= 1 {
				return
			}
		}
	}()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		fmt.Printf("Read failed: %v\n", err)
	}
	<-done
}

func ExampleClient_Progress() {
	client := sdk.NewClient("http://localhost:8080/api/v1")

	transfers, err := client.ListTransfers(1, 10)
	if err != nil {
		fmt.Printf("List failed: %v\n", err)
		return
	}

	for _, t := range transfers {
		progress, err := client.Progress(t.ID)
		if err != nil {
			fmt.Printf("Progress failed: %v\n", err)
			continue
		}
		fmt.Printf("%s %s: %.1f%%\n", progress.ID, progress.Status, progress.Fraction*100)
	}
}
