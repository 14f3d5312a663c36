package attachment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourcePath(t *testing.T) {
	tests := []struct {
		name             string
		path             string
		wantAssetID      uint
		wantAttachmentID uint
	}{
		{"document path", "/api/11/documents/5", 11, 5},
		{"image path", "/api/7/images/99", 7, 99},
		{"trailing slash", "/api/11/documents/5/", 11, 5},
		{"double slashes ignored", "//api//11//documents//5", 11, 5},
		{"extra segments allowed", "/api/3/images/4/extra", 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource, parseErr := ParseResourcePath(tt.path)
			require.Nil(t, parseErr)
			assert.Equal(t, tt.wantAssetID, resource.AssetID)
			assert.Equal(t, tt.wantAttachmentID, resource.AttachmentID)
		})
	}
}

func TestParseResourcePath_MalformedPath(t *testing.T) {
	paths := []string{
		"",
		"/",
		"/api",
		"/api/11",
		"/api/11/documents",
		"///",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resource, parseErr := ParseResourcePath(path)
			assert.Nil(t, resource)
			require.NotNil(t, parseErr)
			assert.Equal(t, MalformedPath, parseErr.Kind)
			assert.Contains(t, parseErr.Error(), "{prefix}/{assetId}/{kind}/{attachmentId}")
		})
	}
}

func TestParseResourcePath_InvalidIdentifier(t *testing.T) {
	tests := []struct {
		name              string
		path              string
		wantRawAsset      string
		wantRawAttachment string
	}{
		{"non-numeric asset id", "/api/abc/images/5", "abc", "5"},
		{"non-numeric attachment id", "/api/11/documents/xyz", "11", "xyz"},
		{"both invalid", "/api/abc/images/xyz", "abc", "xyz"},
		{"negative id", "/api/-1/documents/5", "-1", "5"},
		{"decimal id", "/api/1.5/images/5", "1.5", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource, parseErr := ParseResourcePath(tt.path)
			assert.Nil(t, resource)
			require.NotNil(t, parseErr)
			assert.Equal(t, InvalidIdentifier, parseErr.Kind)
			assert.Equal(t, tt.wantRawAsset, parseErr.RawAssetID)
			assert.Equal(t, tt.wantRawAttachment, parseErr.RawAttachmentID)
		})
	}
}
