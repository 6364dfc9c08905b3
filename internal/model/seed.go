package model

import "time"

// Seed is the retained part of a generated game seed
type Seed struct {
	Hash        string
	Permalink   string
	GeneratedAt time.Time
}

// ChatChannel is the handle of the chat room attached to a seed
type ChatChannel struct {
	Name string
	URL  string
}
