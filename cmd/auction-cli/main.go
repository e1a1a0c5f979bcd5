package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"auction-coordinator/internal/config"
	"auction-coordinator/internal/infrastructure/rpc"
	"auction-coordinator/pkg/utils"
)

// Interactive front end for issuing open/bid/close requests against a
// running coordinator. Each CLI session acts under a fresh random client
// identity; only the session that opened an auction can close it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	client := rpc.NewClient(cfg.Subscriber.CoordinatorURL, rpc.NewHTTPCaller())
	clientID := utils.NewID()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Connected to coordinator at", cfg.Subscriber.CoordinatorURL)
	fmt.Println("Client ID:", clientID)

	for {
		command := ask(reader, "Enter command (open, bid, close, exit): ")

		switch command {
		case "exit":
			fmt.Println("Exiting...")
			return

		case "open":
			item := ask(reader, "Enter item: ")
			price, err := strconv.ParseFloat(ask(reader, "Enter price: "), 64)
			if err != nil {
				fmt.Println("Invalid price")
				continue
			}
			auctionID, err := client.OpenAuction(context.Background(), item, price, clientID)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Println("Auction opened with ID:", auctionID)

		case "bid":
			auctionID := ask(reader, "Enter auction ID: ")
			bidder := ask(reader, "Enter bidder: ")
			amount, err := strconv.ParseFloat(ask(reader, "Enter amount: "), 64)
			if err != nil {
				fmt.Println("Invalid amount")
				continue
			}
			resp, err := client.PlaceBid(context.Background(), auctionID, bidder, amount, clientID)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			if resp.Error != "" {
				fmt.Println("Bid rejected:", resp.Error)
			} else {
				fmt.Println("Bid placed")
			}

		case "close":
			auctionID := ask(reader, "Enter auction ID: ")
			resp, err := client.CloseAuction(context.Background(), auctionID, clientID)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			switch {
			case resp.HighestBid != nil:
				fmt.Printf("Auction closed with highest bid: %s (%.2f)\n",
					resp.HighestBid.Bidder, resp.HighestBid.Amount)
			case resp.Message != "":
				fmt.Println("Close failed:", resp.Message)
			case resp.Error != "":
				fmt.Println("Close failed:", resp.Error)
			default:
				fmt.Println("Auction closed with no bids")
			}

		default:
			fmt.Println("Invalid command")
		}
	}
}

func ask(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("\nExiting...")
		os.Exit(0)
	}
	return strings.TrimSpace(line)
}
