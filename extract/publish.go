package extract

import (
	"context"
	"fmt"

	"github.com/fwojciec/pageblocks"
)

// PublishImages copies the images referenced by blocks from src to dst
// under their document names (see pageblocks.DocumentImageName) and
// returns a copy of blocks pointing at the new names. The input blocks
// are not modified.
func PublishImages(ctx context.Context, src pageblocks.BlobReader, dst pageblocks.BlobStore, docID string, blocks []pageblocks.ContentBlock) ([]pageblocks.ContentBlock, error) {
	if docID == "" {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "document ID required")
	}

	out := make([]pageblocks.ContentBlock, len(blocks))
	copy(out, blocks)

	for i := range out {
		if out[i].ContentType != pageblocks.ContentImage {
			continue
		}

		name := out[i].Image.Name
		published, err := pageblocks.DocumentImageName(name, docID)
		if err != nil {
			return nil, err
		}

		data, err := src.ReadBlob(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", name, err)
		}
		if err := dst.WriteBlob(ctx, published, data); err != nil {
			return nil, fmt.Errorf("write image %s: %w", published, err)
		}

		out[i].Image.Name = published
	}
	return out, nil
}
