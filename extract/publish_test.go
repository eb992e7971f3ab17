package extract_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/extract"
	"github.com/fwojciec/pageblocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishImages(t *testing.T) {
	t.Parallel()

	t.Run("copies images under document names", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		src := mock.NewMemoryBlobStore()
		require.NoError(t, src.WriteBlob(ctx, "image7.png", []byte("seven")))
		require.NoError(t, src.WriteBlob(ctx, "image12.svg", []byte("twelve")))
		dst := mock.NewMemoryBlobStore()

		blocks := []pageblocks.ContentBlock{
			{ContentType: pageblocks.ContentText, Text: long1},
			{ContentType: pageblocks.ContentImage, Image: pageblocks.ImageRef{Name: "image7.png", URL: root + "/a.png"}},
			{ContentType: pageblocks.ContentImage, Image: pageblocks.ImageRef{Name: "image12.svg", URL: root + "/b.svg"}},
		}

		got, err := extract.PublishImages(ctx, src, dst, "42", blocks)
		require.NoError(t, err)

		assert.Equal(t, "image42_7.png", got[1].Image.Name)
		assert.Equal(t, "image42_12.svg", got[2].Image.Name)
		assert.Equal(t, root+"/a.png", got[1].Image.URL)
		assert.Equal(t, long1, got[0].Text)
		assert.Equal(t, "image7.png", blocks[1].Image.Name, "input must not change")

		assert.Equal(t, []string{"image42_7.png", "image42_12.svg"}, dst.Names())
		data, err := dst.ReadBlob(ctx, "image42_12.svg")
		require.NoError(t, err)
		assert.Equal(t, "twelve", string(data))
	})

	t.Run("returns not found for missing images", func(t *testing.T) {
		t.Parallel()

		blocks := []pageblocks.ContentBlock{
			{ContentType: pageblocks.ContentImage, Image: pageblocks.ImageRef{Name: "image0.png"}},
		}

		_, err := extract.PublishImages(context.Background(), mock.NewMemoryBlobStore(), mock.NewMemoryBlobStore(), "doc", blocks)
		assert.Equal(t, pageblocks.ENOTFOUND, pageblocks.ErrorCode(err))
	})

	t.Run("rejects malformed names", func(t *testing.T) {
		t.Parallel()

		blocks := []pageblocks.ContentBlock{
			{ContentType: pageblocks.ContentImage, Image: pageblocks.ImageRef{Name: "logo.png"}},
		}

		_, err := extract.PublishImages(context.Background(), mock.NewMemoryBlobStore(), mock.NewMemoryBlobStore(), "doc", blocks)
		assert.Equal(t, pageblocks.EINVALID, pageblocks.ErrorCode(err))
	})

	t.Run("requires a document ID", func(t *testing.T) {
		t.Parallel()

		_, err := extract.PublishImages(context.Background(), mock.NewMemoryBlobStore(), mock.NewMemoryBlobStore(), "", nil)
		assert.Equal(t, pageblocks.EINVALID, pageblocks.ErrorCode(err))
	})
}
