// Package scrapping imports game data from an external API into the
// database.
//
// The pipeline lives in the sub-packages:
//
//   - models: entity kinds, converted records, results and the gorm tables.
//   - classify: decides whether an item of the shared items endpoint is a
//     resource, a consumable or a plain item.
//   - limits: characteristic ranges used to clamp converted values.
//   - convert: rule tables and formulas mapping raw records to the target model.
//   - integrate: transactional writes with a conflict strategy.
//   - orchestrator: runs jobs with bounded concurrency, timeouts and retries.
//
// This package exposes them to the application.
//
// # Components
//
//   - Service: validates requests, runs jobs and archives their reports.
//   - Archive: keeps reports in memory and in object storage
//     (reports/scrapping/<job-id>.json).
//   - Handler: HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /scrapping/import/:kind/:id : Import one entity.
//   - POST /scrapping/import/batch     : Import a list of entities.
//   - POST /scrapping/import/:kind     : Import every entity of a kind.
//   - GET  /scrapping/preview/:kind/:id : Convert one entity without storing it.
//   - GET  /scrapping/reports/:job     : Get a job report.
//   - GET  /scrapping/types            : List the source type registry.
//   - PUT  /scrapping/types/:id        : Allow or block a source type.
package scrapping
