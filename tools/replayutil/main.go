package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"platforms-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayutil info <file.jsonl.zst>")
			return
		}
		s, err := storage.LoadReplay(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("scene:    %s\n", s.Scene)
		fmt.Printf("seed:     %d\n", s.Seed)
		fmt.Printf("tickRate: %d\n", s.TickRate)
		fmt.Printf("recorded: %s\n", time.Unix(s.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("actions:  %d\n", len(s.Actions))
		if n := len(s.Actions); n > 0 && s.TickRate > 0 {
			last := s.Actions[n-1].Tick
			fmt.Printf("duration: %s\n", time.Duration(last)*time.Second/time.Duration(s.TickRate))
		}
	case "actions":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayutil actions <file.jsonl.zst>")
			return
		}
		s, err := storage.LoadReplay(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid replay: %v\n", err)
			os.Exit(1)
		}
		for _, a := range s.Actions {
			fmt.Printf("%8d  %-14s %-22s %s\n", a.Tick, a.Action, a.Token, string(a.Payload))
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replayutil format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр записанных сессий
Commands:
  info <file>            - заголовок реплея: сцена, сид, частота тиков
  actions <file>         - записанные команды по тикам
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
