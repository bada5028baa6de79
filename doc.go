// Package jfrogsync synchronizes JFrog Artifactory inventory into the Port catalog.
//
// A Syncer reads every repository and every build from Artifactory, maps each record
// to a Port entity and upserts it into a blueprint with merge-on-conflict. A run
// authenticates once, then makes one full pass over repositories and one over builds,
// publishing records one at a time in source order.
//
// Example usage:
//
//	source := artifactory.NewClient(hostURL, accessToken)
//	catalog := port.NewClient(portURL, clientID, clientSecret)
//
//	s, err := jfrogsync.New(source, catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s.OnPublishRejected(func(w *errors.PublishWarning) {
//	    log.Printf("rejected: %s", w.Identifier)
//	})
//
//	result, err := s.Sync(ctx, sync.WithPublishPolicy(sync.PublishPolicyFail))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package jfrogsync
