// Package distribution serves the over-the-air install artifacts.
//
// An ad-hoc iOS install needs two files reachable over HTTP: the application
// binary and the manifest describing it. This package serves both verbatim from
// a Source, plus a plaintext acknowledgement on the root route.
//
// # Sources
//
//   - DiskSource: files under a local root directory (default).
//   - BucketSource: objects in an S3/MinIO bucket, keyed by the backing path.
//
// A missing backing file answers 404; any other read failure answers 500.
// A response is never sent with a partial body.
//
// # Components
//
//   - Service: Resolves artifacts, checks presence, records downloads.
//   - Handler: Registers and serves the routes.
//   - Publisher: Uploads local backing files to the bucket.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET / : "Server listening..."
//   - GET /fitatu.ipa : application binary (application/octet-stream).
//   - GET /manifest.plist : installation manifest (text/plain).
package distribution
