/*
Package inmemorydb provides an implementation of github.com/alexandre-normand/starterbot/store's SiloStringStorer interface
as a bounded in-memory cache in front of a wrapping SiloStringStorer used for actual persistence.

The main use-case for the inmemorydb is to shield the real storer from receiving a lookup for every event since
the metadata enrichment checks the user and channel of each incoming event. Cached users and channels are never
refreshed so a hit in memory is always as good as a hit in the persistent storer.

Example code:

	import (
		"github.com/alexandre-normand/starterbot/store"
		"github.com/alexandre-normand/starterbot/store/inmemorydb"
	)

	func main() {
		persistentStorer, err := store.NewLevelDB("starterbot", "./db_slack_bot_ci/")
		if err != nil {
			log.Fatalf("Opening db failed: %s", err.Error())
		}

		storer, err := inmemorydb.New(persistentStorer, 1000)
		if err != nil {
			log.Fatalf("Creating in-memory db wrapper failed: %s", err.Error())
		}
		defer storer.Close()

		...
	}
*/
package inmemorydb
