/*
Package iconversion stamps app icons with a blurred, darkened band carrying a
text label, so that builds of different variants (debug, staging, production)
can be told apart on the home screen.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ iconversion --help

Running it over an icon asset catalog creates a sibling copy named after the
original with a "-Versioned" suffix, e.g. AppIcon.appiconset becomes
AppIcon-Versioned.appiconset, and rewrites every PNG icon of the copy.

Example to version a whole catalog:

	package main

	import (
		"context"
		"log"

		"github.com/esimov/iconversion"
	)

	func main() {
		opts := iconversion.DefaultOptions()
		opts.AppIconSetPath = "Assets.xcassets/AppIcon.appiconset"
		opts.Text = "STAGING"

		report, err := iconversion.NewCatalog(opts, nil).Run(context.Background())
		if err != nil {
			log.Fatalf("Error versioning icons: %v", err)
		}
		log.Printf("%d icons written to %s", len(report.Processed), report.VersionedPath)
	}

Example to version a single decoded image:

	p, err := iconversion.NewProcessor(opts)
	if err != nil {
		// handle error
	}
	out, err := p.Version(img)
*/
package iconversion
