package officials

// Officeholders as of January 2025. Capitals are permanent.
var states = []State{
	{Name: "Alabama", Abbreviation: "AL", Capital: "Montgomery", Governor: "Kay Ivey", Senators: [2]string{"Tommy Tuberville", "Katie Britt"}},
	{Name: "Alaska", Abbreviation: "AK", Capital: "Juneau", Governor: "Mike Dunleavy", Senators: [2]string{"Lisa Murkowski", "Dan Sullivan"}},
	{Name: "Arizona", Abbreviation: "AZ", Capital: "Phoenix", Governor: "Katie Hobbs", Senators: [2]string{"Kyrsten Sinema", "Mark Kelly"}},
	{Name: "Arkansas", Abbreviation: "AR", Capital: "Little Rock", Governor: "Sarah Huckabee Sanders", Senators: [2]string{"John Boozman", "Tom Cotton"}},
	{Name: "California", Abbreviation: "CA", Capital: "Sacramento", Governor: "Gavin Newsom", Senators: [2]string{"Alex Padilla", "Adam Schiff"}},
	{Name: "Colorado", Abbreviation: "CO", Capital: "Denver", Governor: "Jared Polis", Senators: [2]string{"Michael Bennet", "John Hickenlooper"}},
	{Name: "Connecticut", Abbreviation: "CT", Capital: "Hartford", Governor: "Ned Lamont", Senators: [2]string{"Richard Blumenthal", "Chris Murphy"}},
	{Name: "Delaware", Abbreviation: "DE", Capital: "Dover", Governor: "Matt Meyer", Senators: [2]string{"Tom Carper", "Chris Coons"}},
	{Name: "Florida", Abbreviation: "FL", Capital: "Tallahassee", Governor: "Ron DeSantis", Senators: [2]string{"Marco Rubio", "Rick Scott"}},
	{Name: "Georgia", Abbreviation: "GA", Capital: "Atlanta", Governor: "Brian Kemp", Senators: [2]string{"Jon Ossoff", "Raphael Warnock"}},
	{Name: "Hawaii", Abbreviation: "HI", Capital: "Honolulu", Governor: "Josh Green", Senators: [2]string{"Mazie Hirono", "Brian Schatz"}},
	{Name: "Idaho", Abbreviation: "ID", Capital: "Boise", Governor: "Brad Little", Senators: [2]string{"Mike Crapo", "Jim Risch"}},
	{Name: "Illinois", Abbreviation: "IL", Capital: "Springfield", Governor: "JB Pritzker", Senators: [2]string{"Dick Durbin", "Tammy Duckworth"}},
	{Name: "Indiana", Abbreviation: "IN", Capital: "Indianapolis", Governor: "Mike Braun", Senators: [2]string{"Todd Young", "Jim Banks"}},
	{Name: "Iowa", Abbreviation: "IA", Capital: "Des Moines", Governor: "Kim Reynolds", Senators: [2]string{"Chuck Grassley", "Joni Ernst"}},
	{Name: "Kansas", Abbreviation: "KS", Capital: "Topeka", Governor: "Laura Kelly", Senators: [2]string{"Jerry Moran", "Roger Marshall"}},
	{Name: "Kentucky", Abbreviation: "KY", Capital: "Frankfort", Governor: "Andy Beshear", Senators: [2]string{"Mitch McConnell", "Rand Paul"}},
	{Name: "Louisiana", Abbreviation: "LA", Capital: "Baton Rouge", Governor: "Jeff Landry", Senators: [2]string{"Bill Cassidy", "John Kennedy"}},
	{Name: "Maine", Abbreviation: "ME", Capital: "Augusta", Governor: "Janet Mills", Senators: [2]string{"Susan Collins", "Angus King"}},
	{Name: "Maryland", Abbreviation: "MD", Capital: "Annapolis", Governor: "Wes Moore", Senators: [2]string{"Ben Cardin", "Chris Van Hollen"}},
	{Name: "Massachusetts", Abbreviation: "MA", Capital: "Boston", Governor: "Maura Healey", Senators: [2]string{"Elizabeth Warren", "Ed Markey"}},
	{Name: "Michigan", Abbreviation: "MI", Capital: "Lansing", Governor: "Gretchen Whitmer", Senators: [2]string{"Gary Peters", "Elissa Slotkin"}},
	{Name: "Minnesota", Abbreviation: "MN", Capital: "Saint Paul", Governor: "Tim Walz", Senators: [2]string{"Amy Klobuchar", "Tina Smith"}},
	{Name: "Mississippi", Abbreviation: "MS", Capital: "Jackson", Governor: "Tate Reeves", Senators: [2]string{"Roger Wicker", "Cindy Hyde-Smith"}},
	{Name: "Missouri", Abbreviation: "MO", Capital: "Jefferson City", Governor: "Mike Kehoe", Senators: [2]string{"Josh Hawley", "Eric Schmitt"}},
	{Name: "Montana", Abbreviation: "MT", Capital: "Helena", Governor: "Greg Gianforte", Senators: [2]string{"Steve Daines", "Tim Sheehy"}},
	{Name: "Nebraska", Abbreviation: "NE", Capital: "Lincoln", Governor: "Jim Pillen", Senators: [2]string{"Deb Fischer", "Pete Ricketts"}},
	{Name: "Nevada", Abbreviation: "NV", Capital: "Carson City", Governor: "Joe Lombardo", Senators: [2]string{"Catherine Cortez Masto", "Jacky Rosen"}},
	{Name: "New Hampshire", Abbreviation: "NH", Capital: "Concord", Governor: "Kelly Ayotte", Senators: [2]string{"Jeanne Shaheen", "Maggie Hassan"}},
	{Name: "New Jersey", Abbreviation: "NJ", Capital: "Trenton", Governor: "Phil Murphy", Senators: [2]string{"Cory Booker", "Andy Kim"}},
	{Name: "New Mexico", Abbreviation: "NM", Capital: "Santa Fe", Governor: "Michelle Lujan Grisham", Senators: [2]string{"Martin Heinrich", "Ben Ray Luján"}},
	{Name: "New York", Abbreviation: "NY", Capital: "Albany", Governor: "Kathy Hochul", Senators: [2]string{"Chuck Schumer", "Kirsten Gillibrand"}},
	{Name: "North Carolina", Abbreviation: "NC", Capital: "Raleigh", Governor: "Josh Stein", Senators: [2]string{"Thom Tillis", "Ted Budd"}},
	{Name: "North Dakota", Abbreviation: "ND", Capital: "Bismarck", Governor: "Kelly Armstrong", Senators: [2]string{"John Hoeven", "Kevin Cramer"}},
	{Name: "Ohio", Abbreviation: "OH", Capital: "Columbus", Governor: "Mike DeWine", Senators: [2]string{"Sherrod Brown", "Bernie Moreno"}},
	{Name: "Oklahoma", Abbreviation: "OK", Capital: "Oklahoma City", Governor: "Kevin Stitt", Senators: [2]string{"James Lankford", "Markwayne Mullin"}},
	{Name: "Oregon", Abbreviation: "OR", Capital: "Salem", Governor: "Tina Kotek", Senators: [2]string{"Ron Wyden", "Jeff Merkley"}},
	{Name: "Pennsylvania", Abbreviation: "PA", Capital: "Harrisburg", Governor: "Josh Shapiro", Senators: [2]string{"Bob Casey", "John Fetterman"}},
	{Name: "Rhode Island", Abbreviation: "RI", Capital: "Providence", Governor: "Dan McKee", Senators: [2]string{"Jack Reed", "Sheldon Whitehouse"}},
	{Name: "South Carolina", Abbreviation: "SC", Capital: "Columbia", Governor: "Henry McMaster", Senators: [2]string{"Lindsey Graham", "Tim Scott"}},
	{Name: "South Dakota", Abbreviation: "SD", Capital: "Pierre", Governor: "Kristi Noem", Senators: [2]string{"John Thune", "Mike Rounds"}},
	{Name: "Tennessee", Abbreviation: "TN", Capital: "Nashville", Governor: "Bill Lee", Senators: [2]string{"Marsha Blackburn", "Bill Hagerty"}},
	{Name: "Texas", Abbreviation: "TX", Capital: "Austin", Governor: "Greg Abbott", Senators: [2]string{"John Cornyn", "Ted Cruz"}},
	{Name: "Utah", Abbreviation: "UT", Capital: "Salt Lake City", Governor: "Spencer Cox", Senators: [2]string{"Mike Lee", "John Curtis"}},
	{Name: "Vermont", Abbreviation: "VT", Capital: "Montpelier", Governor: "Phil Scott", Senators: [2]string{"Bernie Sanders", "Peter Welch"}},
	{Name: "Virginia", Abbreviation: "VA", Capital: "Richmond", Governor: "Glenn Youngkin", Senators: [2]string{"Mark Warner", "Tim Kaine"}},
	{Name: "Washington", Abbreviation: "WA", Capital: "Olympia", Governor: "Bob Ferguson", Senators: [2]string{"Maria Cantwell", "Patty Murray"}},
	{Name: "West Virginia", Abbreviation: "WV", Capital: "Charleston", Governor: "Patrick Morrisey", Senators: [2]string{"Shelley Moore Capito", "Jim Justice"}},
	{Name: "Wisconsin", Abbreviation: "WI", Capital: "Madison", Governor: "Tony Evers", Senators: [2]string{"Tammy Baldwin", "Eric Hovde"}},
	{Name: "Wyoming", Abbreviation: "WY", Capital: "Cheyenne", Governor: "Mark Gordon", Senators: [2]string{"John Barrasso", "Cynthia Lummis"}},
}
