// Package save persists puzzle progress to disk.
//
// Progress is stored as one JSON file per puzzle under a saves directory,
// holding the paths drawn for each color. The service layer writes a save
// after every successful draw or erase and restores it by replaying the
// paths onto a fresh board, so a restarted server resumes where the player
// left off.
//
// Usage:
//
//	store, err := save.NewFileStore("saves")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	paths, ok, err := store.Load("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if ok {
//		// replay paths
//	}
package save
