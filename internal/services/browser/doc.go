// Package browser hosts the console's browser-facing HTTP service.
//
// The service assembles the main GUI from an immutable plugin registry built
// at startup. Feature modules own their routes; app.Compose mounts them
// behind session authentication.
package browser
