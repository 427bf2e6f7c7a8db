package models

import "time"

// CID is a content identifier: an immutable handle returned by the remote
// store for a specific uploaded blob.
type CID string

// Upload is one entry of the remote store's listing for a name. The store is
// append-only, so every push of a snapshot produces a new Upload; the most
// recent one by UploadedAt is the current snapshot for that name.
type Upload struct {
	CID        CID       `json:"cid"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"created"`
}

// LatestUpload selects the upload with the most recent UploadedAt. On equal
// timestamps the earliest entry in listing order wins, so the store's own
// ordering acts as the tie-break. Returns false for an empty listing.
func LatestUpload(uploads []Upload) (Upload, bool) {
	if len(uploads) == 0 {
		return Upload{}, false
	}

	latest := uploads[0]
	for _, u := range uploads[1:] {
		if u.UploadedAt.After(latest.UploadedAt) {
			latest = u
		}
	}
	return latest, true
}
