// Package timetable is the schedule-of-last-resort: hand-entered
// departure tables for the Cascais line, used both as the fallback
// tier when no upstream data is available and as the slot grid that
// live vehicle reports are matched onto.
//
// Each direction has a daily table that applies every day and a
// weekday overlay that applies Monday through Friday. On weekdays the
// two are unioned, deduplicated and re-sorted by time of day.
package timetable
