/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores
 * and retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const keyPrefix = "s3cache"

// Cache objects store and retrieve data using Amazon S3. Entries are
// gzipped at rest. Cache operations are best effort: storage failures are
// logged and surface as cache misses, never as request failures.
type Cache struct {
	// Config is the Amazon S3 configuration, loaded by Init from the
	// default sources (environment, shared config/credentials files).
	Config aws.Config

	// Client is the s3 client the cache uses. Init sets it from Config;
	// callers may override it afterward with their own client.
	Client *s3.Client

	bucketName string
	ctx        context.Context
}

// New returns a Cache backed by the named S3 bucket. Callers must invoke
// Init() on the returned Cache before use.
func New(ctx context.Context, bucketName string) *Cache {
	return &Cache{
		ctx:        ctx,
		bucketName: bucketName,
	}
}

// Init loads the AWS configuration and verifies the bucket is reachable
// with the available credentials.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		// no such key just indicates a cache miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			log.Printf("s3cache.get: failed to get object %v%v: %v",
				c.bucketName, *input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		log.Printf("s3cache.get: failed to open compressed object %v%v: %v",
			c.bucketName, *input.Key, err)
		return nil, false
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		log.Printf("s3cache.get: failed to read object %v%v: %v",
			c.bucketName, *input.Key, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		log.Printf("s3cache.set: failed to gzip data for %v: %v", key, err)
		return
	}
	if err := gz.Close(); err != nil {
		log.Printf("s3cache.set: failed to close gzip writer for %v: %v",
			key, err)
		return
	}

	_, err := c.Client.PutObject(c.ctx, &s3.PutObjectInput{
		Bucket:          aws.String(c.bucketName),
		Key:             aws.String(objectKey(key)),
		Body:            &buf,
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		log.Printf("s3cache.set: put failed for %v%v: %v", c.bucketName,
			objectKey(key), err)
	}
}

func (c *Cache) Delete(key string) {
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(key)),
	})
	if err != nil {
		log.Printf("s3cache.delete: delete failed: %v", err)
	}
}

func objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("/%v/%v.gz", keyPrefix, hex.EncodeToString(sum[:]))
}
