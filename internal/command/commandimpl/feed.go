package commandimpl

import (
	"context"
	"time"
)

const feedSize = 10

func (c *CommandImpl) handleFeed(ctx context.Context) {
	records, err := c.Gallery.Recent(ctx, feedSize)
	if err != nil {
		c.Logger.Error("Failed to list uploads", "error", err)
		c.out.println("An error occurred. Please try again.")
		return
	}

	if len(records) == 0 {
		c.out.println("No uploads yet. Use 'upload' to post a photo.")
		return
	}

	c.out.println("Recent uploads:")
	for i, r := range records {
		c.out.printf("%d. %s  %s  %s\n", i+1, r.PhotoID, r.UploadedAt.Format(time.DateTime), r.FileURL)
	}
}
