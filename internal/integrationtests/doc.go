// Package integrationtests exercises the whole load, resolve and render
// pipeline through the application entrypoint.
package integrationtests
