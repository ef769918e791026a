// Package blobsink appends rendered lines to an Azure append blob.
package blobsink

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/appendblob"
	"github.com/Azure/azure-sdk-for-go/storage"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/go-kit/kit/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// blockAppender is the part of an append blob the sink needs.
type blockAppender interface {
	appendBlock(ctx context.Context, block []byte) error
}

type sasBlob struct {
	blob *storage.Blob
}

func (b sasBlob) appendBlock(_ context.Context, block []byte) error {
	return b.blob.AppendBlock(block, nil)
}

type managedIdentityBlob struct {
	client *appendblob.Client
}

func (b managedIdentityBlob) appendBlock(ctx context.Context, block []byte) error {
	_, err := b.client.AppendBlock(ctx, streaming.NopCloser(bytes.NewReader(block)), nil)
	return err
}

// Sink writes one append block per line. The blob is created, or cleared if
// it already exists, when the sink is opened.
type Sink struct {
	mu    sync.Mutex
	blob  blockAppender
	uri   string
	sleep SleepFunc

	// ctx is the logger context
	ctx *log.Context
}

// Openers for both authentication paths; replaced in tests.
var (
	openSASBlob = func(uri, sas string) (blockAppender, error) {
		blob, err := createOrReplaceAppendBlob(uri, sas)
		if err != nil {
			return nil, err
		}
		return sasBlob{blob: blob}, nil
	}
	openManagedIdentityBlob = func(uri, clientID string) (blockAppender, error) {
		client, err := createOrReplaceAppendBlobUsingManagedIdentity(uri, clientID)
		if err != nil {
			return nil, err
		}
		return managedIdentityBlob{client: client}, nil
	}
)

// Open creates or replaces the append blob described by cfg. A SAS token is
// tried first; without one, or if it fails, the managed identity is used.
// When both fail the returned error carries both causes.
func Open(ctx *log.Context, cfg types.BlobOutput) (*Sink, error) {
	if cfg.URI == "" {
		return nil, errors.New("blob output uri is empty")
	}
	ctx = ctx.With("blob", GetUriForLogging(cfg.URI))

	var result *multierror.Error
	if cfg.SASToken != "" {
		blob, err := openSASBlob(cfg.URI, cfg.SASToken)
		if err == nil {
			ctx.Log("message", "append blob created using SAS token")
			return newSink(ctx, cfg.URI, blob), nil
		}
		ctx.Log("message", "error creating blob using SAS token. Retrying with managed identity", "error", err)
		result = multierror.Append(result, errors.Wrap(err, "using SAS token"))
	}

	blob, err := openManagedIdentityBlob(cfg.URI, cfg.ManagedIdentityClientID)
	if err != nil {
		result = multierror.Append(result, errors.Wrap(err, "using managed identity"))
		return nil, errors.Wrap(result.ErrorOrNil(), "creating or replacing append blob failed")
	}
	ctx.Log("message", "append blob created using managed identity")
	return newSink(ctx, cfg.URI, blob), nil
}

func newSink(ctx *log.Context, uri string, blob blockAppender) *Sink {
	return &Sink{blob: blob, uri: uri, sleep: ActualSleep, ctx: ctx}
}

func (s *Sink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	block := []byte(line + "\n")
	err := withRetries(s.ctx, s.sleep, func() error {
		return s.blob.appendBlock(context.Background(), block)
	})
	if err != nil {
		s.ctx.Log("message", "AppendToBlob failed", "error", err)
		return errors.Wrapf(err, "failed to append to blob '%s'", GetUriForLogging(s.uri))
	}
	return nil
}

// createOrReplaceAppendBlob creates a reference to an append blob. If blob exists - it gets cleared.
func createOrReplaceAppendBlob(blobURI, blobSas string) (*storage.Blob, error) {
	bloburl, err := url.Parse(blobURI + blobSas)
	if err != nil {
		return nil, err
	}

	containerRef, err := storage.GetContainerReferenceFromSASURI(*bloburl)
	if err != nil {
		return nil, err
	}

	fileName, blobPathError := getBlobPathAfterContainerName(blobURI, containerRef.Name)
	if fileName == "" {
		return nil, errors.Wrapf(blobPathError, "cannot extract blob path name from URL: %q", GetUriForLogging(blobURI))
	}

	blobref := containerRef.GetBlobReference(fileName)
	if err := blobref.PutAppendBlob(nil); err != nil {
		return nil, err
	}
	return blobref, nil
}

func createOrReplaceAppendBlobUsingManagedIdentity(blobURI string, clientID string) (*appendblob.Client, error) {
	var options *azidentity.ManagedIdentityCredentialOptions
	if clientID != "" { // Use user-assigned identity if clientId is provided
		options = &azidentity.ManagedIdentityCredentialOptions{ID: azidentity.ClientID(clientID)}
	}
	cred, err := azidentity.NewManagedIdentityCredential(options)
	if err != nil {
		return nil, errors.Wrap(err, "error while retrieving managed identity credential")
	}

	client, err := appendblob.NewClient(blobURI, cred, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating client to append blob '%s'", GetUriForLogging(blobURI))
	}

	// If the append blob already exists, it gets cleared.
	if _, err := client.Create(context.Background(), nil); err != nil {
		return nil, errors.Wrapf(err, "error creating or replacing the append blob '%s'. Make sure you are using an append blob", GetUriForLogging(blobURI))
	}
	return client, nil
}

// getBlobPathAfterContainerName extracts the suffix after the container name from blob uri.
// Example: https://mystorageaccount.blob.core.windows.net/mycontainer/dir2/dial.log returns "dir2/dial.log".
func getBlobPathAfterContainerName(blobURI string, containerName string) (string, error) {
	blobURL, err := url.Parse(blobURI)
	if err != nil {
		return "", err
	}

	containerNameSearchString := containerName + "/"
	index := strings.Index(blobURL.Path, containerNameSearchString)
	if index < 0 {
		return "", errors.New(fmt.Sprintf("Unable to find '%s' in blobURI '%s'", containerNameSearchString, GetUriForLogging(blobURI)))
	}
	return blobURL.Path[index+len(containerNameSearchString):], nil
}

// GetUriForLogging scrubs the query, which may carry a SAS token.
func GetUriForLogging(uriString string) string {
	if uriString == "" {
		return uriString
	}

	u, err := url.Parse(uriString)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host + u.Path
}
