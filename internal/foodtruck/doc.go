// Package foodtruck models mobile food facility schedule records and decides
// which of them are open at a given moment.
//
// A Truck is one schedule entry from the upstream dataset: the same permit
// holder appears once per day and time window. FilterOpen keeps the entries
// whose day matches the moment's weekday and whose window strictly contains
// the moment's time of day.
package foodtruck
