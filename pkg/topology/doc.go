// Package topology resolves a deployment stage into a DeploymentGraph: the
// static-assets bucket, the server function, the CDN distribution that routes
// between them, the asset sync instruction and the operator outputs.
//
// Everything here is pure. Nothing calls a provisioning backend; the graph is
// handed to an executor (see pkg/synth) that owns allocation, rollback and
// error reporting.
//
// Trust boundary: the server function is exposed through a function URL with
// auth type NONE. The distribution is the intended entry point and the
// function URL must not carry secrets, but it remains directly invokable by
// anyone who learns it. The bucket, by contrast, is never public: the
// distribution reads it through origin access control bound to that
// distribution alone.
package topology
